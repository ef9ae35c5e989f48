package employee

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                int64           `json:"-"`
	FullName          string          `json:"fullName"`
	NationalID        string          `json:"nationalId"`
	Designation       string          `json:"designation"`
	AnnualCTC         decimal.Decimal `json:"ctc"`
	IncrementPerMonth decimal.Decimal `json:"incrementPerMonth"`
	ResignationDate   *time.Time      `json:"resignationDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Code is the display id, e.g. EMP0007.
func (e Employee) Code() string {
	return FormatCode(e.ID)
}

func FormatCode(id int64) string {
	return fmt.Sprintf("EMP%04d", id)
}

// ParseCode reverses FormatCode.
func ParseCode(code string) (int64, bool) {
	digits, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(code)), "EMP")
	if !ok || digits == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Submission is the identity and pay data carried by a document form.
type Submission struct {
	FullName          string
	NationalID        string
	Designation       string
	AnnualCTC         decimal.Decimal
	IncrementPerMonth decimal.Decimal
	ResignationDate   *time.Time
}
