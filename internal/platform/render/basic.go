package render

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// layout is what the PDF backend takes from an HTML document: the body
// lowered to the gofpdf HTMLBasic tag subset, the watermark image and the
// document's style sheet.
type layout struct {
	body      string
	watermark string
	styles    styleSheet
}

// lower tokenizes doc and rewrites it into the tags the gofpdf HTML writer
// understands: b, i, u, br, a and center. Text inside script and title is
// dropped, style text is collected, and the watermark block is replaced by
// its image source.
func lower(doc string) layout {
	var (
		out       basicWriter
		styleText strings.Builder
		result    layout
		rawTag    string
		markDepth int
	)

	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()

		switch tt {
		case html.TextToken:
			switch {
			case rawTag == "style":
				styleText.WriteString(tok.Data)
			case rawTag != "", markDepth > 0:
			default:
				out.text(tok.Data)
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			if markDepth > 0 {
				if tok.Data == "img" && result.watermark == "" {
					result.watermark = attr(tok, "src")
				}
				if tok.Data == "div" && tt == html.StartTagToken {
					markDepth++
				}
				continue
			}
			switch tok.Data {
			case "style", "script", "title":
				if tt == html.StartTagToken {
					rawTag = tok.Data
				}
				continue
			case "div":
				if tt == html.StartTagToken && hasClass(tok, "watermark") {
					markDepth = 1
					continue
				}
			}
			out.tag(basicTag(tok.Data, attr(tok, "href"), false))

		case html.EndTagToken:
			if markDepth > 0 {
				if tok.Data == "div" {
					markDepth--
				}
				continue
			}
			if tok.Data == rawTag {
				rawTag = ""
				continue
			}
			out.tag(basicTag(tok.Data, "", true))
		}
	}

	result.body = strings.TrimSpace(out.String())
	result.styles = parseStyleSheet(styleText.String())
	return result
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(tok html.Token, class string) bool {
	for _, c := range strings.Fields(attr(tok, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

var hrefEscaper = strings.NewReplacer(`"`, "%22", "<", "%3C", ">", "%3E")

// basicTag maps one HTML tag to its HTMLBasic rendition. Block elements
// become line breaks, table cells become spaced runs.
func basicTag(name, href string, closing bool) string {
	slash := ""
	if closing {
		slash = "/"
	}
	switch name {
	case "b", "strong":
		return "<" + slash + "b>"
	case "th":
		if closing {
			return "</b>   "
		}
		return "<b>"
	case "i", "em":
		return "<" + slash + "i>"
	case "u":
		return "<" + slash + "u>"
	case "center":
		return "<" + slash + "center>"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if closing {
			return "</b><br>"
		}
		return "<br><b>"
	case "br":
		return "<br>"
	case "p", "div", "tr", "li", "table", "section", "header", "footer", "hr":
		if closing || name == "hr" {
			return "<br>"
		}
		return ""
	case "td":
		if closing {
			return "   "
		}
		return ""
	case "a":
		if closing {
			return "</a>"
		}
		if href == "" {
			return ""
		}
		return `<a href="` + hrefEscaper.Replace(href) + `">`
	default:
		return ""
	}
}

// basicWriter accumulates HTMLBasic output, collapsing whitespace and
// capping runs of line breaks at two.
type basicWriter struct {
	b      strings.Builder
	breaks int
}

func (w *basicWriter) text(s string) {
	s = plainText(s)
	if s == "" || (s == " " && (w.breaks > 0 || w.b.Len() == 0)) {
		return
	}
	w.b.WriteString(s)
	w.breaks = 0
}

func (w *basicWriter) tag(s string) {
	for i, part := range strings.Split(s, "<br>") {
		if i > 0 && w.breaks < 2 {
			w.b.WriteString("<br>")
			w.breaks++
		}
		if part == "" {
			continue
		}
		w.b.WriteString(part)
		if strings.TrimSpace(part) != "" {
			w.breaks = 0
		}
	}
}

func (w *basicWriter) String() string {
	return w.b.String()
}

// plainText collapses whitespace runs to one space and turns angle
// brackets into parentheses so text never reads as markup to HTMLBasic.
func plainText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		case r == '<':
			r = '('
		case r == '>':
			r = ')'
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
