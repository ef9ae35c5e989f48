package render

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

const defaultFont = "Helvetica"

// styleSheet maps a selector to its declarations. Later rules override
// earlier ones, so a template's own styles win over the injected defaults.
type styleSheet map[string]map[string]string

func parseStyleSheet(src string) styleSheet {
	sheet := styleSheet{}
	if strings.TrimSpace(src) == "" {
		return sheet
	}

	p := css.NewParser(parse.NewInputString(src), false)
	var selectors []string
	lastErr := -1
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if !p.HasParseError() || p.Offset() == lastErr {
				return sheet
			}
			lastErr = p.Offset()
		case css.BeginRulesetGrammar:
			selectors = selectors[:0]
			for _, sel := range strings.Split(joinTokens(p.Values()), ",") {
				if sel = strings.TrimSpace(sel); sel != "" {
					selectors = append(selectors, sel)
				}
			}
		case css.EndRulesetGrammar:
			selectors = selectors[:0]
		case css.DeclarationGrammar:
			prop := strings.ToLower(string(data))
			value := strings.TrimSpace(joinTokens(p.Values()))
			for _, sel := range selectors {
				if sheet[sel] == nil {
					sheet[sel] = map[string]string{}
				}
				sheet[sel][prop] = value
			}
		}
	}
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.Write(tok.Data)
	}
	return b.String()
}

func (s styleSheet) value(selector, property string) string {
	return s[selector][property]
}

// font returns the gofpdf core font for the body font-family, taking the
// first family in the list that has one.
func (s styleSheet) font() string {
	for _, family := range strings.Split(s.value("body", "font-family"), ",") {
		switch strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`)) {
		case "arial", "helvetica", "sans-serif":
			return "Helvetica"
		case "times", "times new roman", "serif":
			return "Times"
		case "courier", "courier new", "monospace":
			return "Courier"
		}
	}
	return defaultFont
}

// watermarkOpacity reads the image opacity, falling back to the block's.
func (s styleSheet) watermarkOpacity(fallback float64) float64 {
	for _, sel := range []string{".watermark img", ".watermark"} {
		if v, err := strconv.ParseFloat(s.value(sel, "opacity"), 64); err == nil && v >= 0 && v <= 1 {
			return v
		}
	}
	return fallback
}

// watermarkWidth is the image max-width as a fraction of the page width.
func (s styleSheet) watermarkWidth(fallback float64) float64 {
	raw, ok := strings.CutSuffix(s.value(".watermark img", "max-width"), "%")
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || v > 100 {
		return fallback
	}
	return v / 100
}
