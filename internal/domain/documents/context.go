package documents

import (
	"hrdocs/internal/domain/company"
	"hrdocs/internal/domain/payroll"
)

type EmployeeView struct {
	ID          string
	FullName    string
	Address     string
	NationalID  string
	PAN         string
	Designation string
}

// RenderContext is everything a document template can reference. It is
// rebuilt for every render and cloned per month in batch mode.
type RenderContext struct {
	DocumentType DocumentType
	Employee     EmployeeView
	Bank         BankDetails
	AnnualCTC    string
	Salary       payroll.Breakdown

	JoiningDate              string
	ResignationDate          string
	FormattedJoiningDate     string
	FormattedResignationDate string
	RelievingDate            string
	DateBefore               string
	Today                    string

	Months       []string
	MonthLabels  []string
	MonthLabel   string
	CurrentMonth string
	Year         string

	Company      company.Company
	Watermark    string
	WatermarkURL string
}

func (c RenderContext) Clone() RenderContext {
	out := c
	out.Months = append([]string(nil), c.Months...)
	out.MonthLabels = append([]string(nil), c.MonthLabels...)
	return out
}
