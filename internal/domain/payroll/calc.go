package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	monthsPerYear = decimal.NewFromInt(12)

	basicRate      = decimal.RequireFromString("0.50")
	hraRate        = decimal.RequireFromString("0.50")
	conveyanceRate = decimal.RequireFromString("0.05")
	medicalRate    = decimal.RequireFromString("0.014")
	telephoneRate  = decimal.RequireFromString("0.02")

	// ProfessionalTax is deducted flat from every monthly gross.
	ProfessionalTax = decimal.NewFromInt(200)
)

// Amount is a coerced numeric input. Valid is false when the raw value was
// absent or unparseable, in which case Value is zero.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

func ParseAmount(raw string) Amount {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Amount{Value: decimal.Zero}
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return Amount{Value: decimal.Zero}
	}
	return Amount{Value: value, Valid: true}
}

type Breakdown struct {
	MonthlyCTC               decimal.Decimal `json:"monthlyCtc"`
	MonthlyCTCAfterIncrement decimal.Decimal `json:"monthlyCtcAfterIncrement"`
	IncrementPerMonth        decimal.Decimal `json:"incrementPerMonth"`
	Basic                    decimal.Decimal `json:"basic"`
	HRA                      decimal.Decimal `json:"hra"`
	Conveyance               decimal.Decimal `json:"conveyance"`
	Medical                  decimal.Decimal `json:"medical"`
	Telephone                decimal.Decimal `json:"telephone"`
	SpecialAllowance         decimal.Decimal `json:"specialAllowance"`
	ProfessionalTax          decimal.Decimal `json:"professionalTax"`
	GrossSalary              decimal.Decimal `json:"grossSalary"`
	NetSalary                decimal.Decimal `json:"netSalary"`
}

// round is half-to-even on whole currency units.
func round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(0)
}

// ComputeBreakdown derives the monthly salary components from an annual CTC
// and a monthly increment. Each component is rounded before the next one
// depends on it; special allowance absorbs the remainder and is not clamped.
func ComputeBreakdown(annualCTC, increment decimal.Decimal) Breakdown {
	monthly := round(annualCTC.Div(monthsPerYear))
	after := monthly.Add(increment)

	basic := round(after.Mul(basicRate))
	hra := round(basic.Mul(hraRate))
	conveyance := round(after.Mul(conveyanceRate))
	medical := round(after.Mul(medicalRate))
	telephone := round(after.Mul(telephoneRate))

	named := basic.Add(hra).Add(conveyance).Add(medical).Add(telephone)
	special := after.Sub(named)
	gross := named.Add(special)

	return Breakdown{
		MonthlyCTC:               monthly,
		MonthlyCTCAfterIncrement: after,
		IncrementPerMonth:        increment,
		Basic:                    basic,
		HRA:                      hra,
		Conveyance:               conveyance,
		Medical:                  medical,
		Telephone:                telephone,
		SpecialAllowance:         special,
		ProfessionalTax:          ProfessionalTax,
		GrossSalary:              gross,
		NetSalary:                gross.Sub(ProfessionalTax),
	}
}

// Compute coerces raw form values and computes the breakdown.
func Compute(rawAnnualCTC, rawIncrement string) Breakdown {
	return ComputeBreakdown(ParseAmount(rawAnnualCTC).Value, ParseAmount(rawIncrement).Value)
}
