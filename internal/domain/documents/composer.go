package documents

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hrdocs/internal/domain/company"
	"hrdocs/internal/domain/dates"
	"hrdocs/internal/domain/payroll"
)

// OfferLeadWorkdays is how many workdays before joining an offer letter is
// dated.
const OfferLeadWorkdays = 8

type CompanyLookup interface {
	Lookup(id string) (company.Company, error)
}

// Composition is a populated context plus the template that renders it.
type Composition struct {
	Template string
	Context  RenderContext
}

type Composer struct {
	companies    CompanyLookup
	assetBaseURL string
	now          func() time.Time
}

type ComposerOption func(*Composer)

func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

func WithAssetBaseURL(base string) ComposerOption {
	return func(c *Composer) {
		c.assetBaseURL = base
	}
}

func NewComposer(companies CompanyLookup, opts ...ComposerOption) *Composer {
	c := &Composer{companies: companies, assetBaseURL: "/static/images/", now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the context for the request's own document type.
func (c *Composer) Compose(req Request) (Composition, error) {
	if !req.DocumentType.Valid() {
		return Composition{}, fmt.Errorf("%w: %q", ErrUnknownDocumentType, req.DocumentType)
	}
	ctx, err := c.buildContext(req)
	if err != nil {
		return Composition{}, err
	}
	if req.DocumentType.MonthSensitive() {
		ctx.MonthLabels = c.monthLabels(req.SelectedMonths(), req.Year)
		if len(ctx.MonthLabels) > 0 {
			ctx.MonthLabel = ctx.MonthLabels[0]
		}
	}
	return Composition{Template: req.DocumentType.TemplateName(), Context: ctx}, nil
}

// ComposeFor builds the context for previewing a single document out of the
// request, which may differ from the request's own type. Salary slips get a
// single label for the first selected month in the current year.
func (c *Composer) ComposeFor(req Request, docType DocumentType) (Composition, error) {
	if !docType.Valid() {
		return Composition{}, fmt.Errorf("%w: %q", ErrUnknownDocumentType, docType)
	}
	ctx, err := c.buildContext(req)
	if err != nil {
		return Composition{}, err
	}
	ctx.DocumentType = docType
	months := req.SelectedMonths()
	if docType == SalarySlip && len(months) > 0 {
		ctx.MonthLabel = normalizeMonth(months[0]) + " " + strconv.Itoa(c.now().Year())
		ctx.MonthLabels = []string{ctx.MonthLabel}
	}
	return Composition{Template: docType.TemplateName(), Context: ctx}, nil
}

func (c *Composer) buildContext(req Request) (RenderContext, error) {
	comp, err := c.companies.Lookup(req.CompanyID)
	if err != nil {
		return RenderContext{}, err
	}

	ctx := RenderContext{
		DocumentType: req.DocumentType,
		Employee: EmployeeView{
			ID:          req.EmployeeID,
			FullName:    req.FullName,
			Address:     req.Address,
			NationalID:  req.NationalID,
			PAN:         req.PAN,
			Designation: req.Designation,
		},
		Bank:      req.Bank,
		AnnualCTC: payroll.ParseAmount(req.AnnualCTC).Value.String(),
		Salary:    payroll.Compute(req.AnnualCTC, req.IncrementPerMonth),
		Months:    append([]string(nil), req.Months...),
		Year:      c.year(req.Year),
		Company:   comp,
		Watermark: company.Watermark(comp.ID),
		Today:     c.now().Format(dates.LongLayout),
	}
	ctx.WatermarkURL = c.assetURL(ctx.Watermark)

	if joining := req.Joining(); joining.Valid {
		ctx.JoiningDate = joining.ISO()
		ctx.FormattedJoiningDate, _ = dates.FormatDate(joining, "")
		ctx.DateBefore, _ = dates.FormatDate(dates.PreviousWorkday(joining.Time, OfferLeadWorkdays), "")
	}
	if resignation := req.Resignation(); resignation.Valid {
		ctx.ResignationDate = resignation.ISO()
		ctx.FormattedResignationDate, _ = dates.FormatDate(resignation, "")
		ctx.RelievingDate, _ = dates.FormatDate(dates.RelievingDate(resignation.Time), "")
	}
	return ctx, nil
}

func (c *Composer) year(selected string) string {
	if y := strings.TrimSpace(selected); y != "" {
		return y
	}
	return strconv.Itoa(c.now().Year())
}

func (c *Composer) monthLabels(months []string, selectedYear string) []string {
	if len(months) == 0 {
		return nil
	}
	year := c.year(selectedYear)
	labels := make([]string, 0, len(months))
	for _, m := range months {
		labels = append(labels, normalizeMonth(m)+" "+year)
	}
	return labels
}

func (c *Composer) assetURL(asset string) string {
	if c.assetBaseURL == "" {
		return asset
	}
	if strings.Contains(c.assetBaseURL, "://") {
		return strings.TrimSuffix(c.assetBaseURL, "/") + "/" + asset
	}
	return path.Join(c.assetBaseURL, asset)
}

// normalizeMonth capitalises the first letter and lowercases the rest.
func normalizeMonth(m string) string {
	m = strings.TrimSpace(m)
	if m == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(m)
	return cases.Upper(language.Und).String(string(first)) + cases.Lower(language.Und).String(m[size:])
}
