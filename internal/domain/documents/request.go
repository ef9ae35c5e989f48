package documents

import (
	"strings"

	"hrdocs/internal/domain/dates"
)

type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	Branch        string `json:"branch"`
	IFSCCode      string `json:"ifscCode"`
}

// Request is one submitted document form. It is treated as an immutable
// value: the With* helpers return modified copies.
type Request struct {
	CompanyID         string       `json:"companyId"`
	DocumentType      DocumentType `json:"documentType"`
	EmployeeID        string       `json:"employeeId"`
	FullName          string       `json:"fullName"`
	Address           string       `json:"address"`
	NationalID        string       `json:"nationalId"`
	PAN               string       `json:"panNo"`
	Designation       string       `json:"designation"`
	AnnualCTC         string       `json:"ctc"`
	IncrementPerMonth string       `json:"incrementPerMonth"`
	Bank              BankDetails  `json:"bankDetails"`
	JoiningDate       string       `json:"joiningDate"`
	ResignationDate   string       `json:"resignationDate"`
	Months            []string     `json:"months"`
	Year              string       `json:"year"`
}

func (r Request) WithEmployeeID(id string) Request {
	out := r.clone()
	out.EmployeeID = id
	return out
}

func (r Request) WithMonths(months []string) Request {
	out := r.clone()
	out.Months = append([]string(nil), months...)
	return out
}

func (r Request) clone() Request {
	out := r
	out.Months = append([]string(nil), r.Months...)
	return out
}

func (r Request) Joining() dates.Date {
	return dates.ParseISO(r.JoiningDate)
}

func (r Request) Resignation() dates.Date {
	return dates.ParseISO(r.ResignationDate)
}

// SelectedMonths returns the non-blank month tokens in selection order. A
// month picked more than once, in any letter case, keeps its first position.
func (r Request) SelectedMonths() []string {
	out := make([]string, 0, len(r.Months))
	seen := make(map[string]bool, len(r.Months))
	for _, m := range r.Months {
		key := strings.ToLower(strings.TrimSpace(m))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// IsBatch reports whether generation produces one salary slip per month.
func (r Request) IsBatch() bool {
	return r.DocumentType == SalarySlip && len(r.SelectedMonths()) > 1
}
