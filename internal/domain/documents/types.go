package documents

import "strings"

type DocumentType string

const (
	OfferLetter     DocumentType = "offer_letter"
	SalarySlip      DocumentType = "salary_slip"
	RelievingLetter DocumentType = "relieving_letter"
	OfferAndSalary  DocumentType = "offer_and_salary"
)

// DocumentTypes lists every supported type in display order.
var DocumentTypes = []DocumentType{OfferLetter, SalarySlip, RelievingLetter, OfferAndSalary}

func ParseDocumentType(raw string) (DocumentType, error) {
	candidate := DocumentType(strings.ToLower(strings.TrimSpace(raw)))
	for _, t := range DocumentTypes {
		if t == candidate {
			return t, nil
		}
	}
	return "", ErrUnknownDocumentType
}

// TemplateName maps every document type to the template that renders it.
// The combined offer_and_salary pack renders through the offer letter; its
// salary slips are only produced by the batch path.
func (t DocumentType) TemplateName() string {
	switch t {
	case OfferLetter, OfferAndSalary:
		return "offer_letter"
	case SalarySlip:
		return "salary_slip"
	case RelievingLetter:
		return "relieving_letter"
	}
	return ""
}

func (t DocumentType) MonthSensitive() bool {
	return t == SalarySlip || t == OfferAndSalary
}

func (t DocumentType) Valid() bool {
	return t.TemplateName() != ""
}

func (t DocumentType) String() string {
	return string(t)
}
