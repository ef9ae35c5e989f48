package documents

import (
	"regexp"
	"strings"
)

// SafeStyle is injected into every document before rendering.
const SafeStyle = `<style>
    table { width: 100%; border-collapse: collapse; }
    td, th { padding: 5px; word-wrap: break-word; }
    body { font-family: Arial, sans-serif; }
    .watermark {
        position: fixed; opacity: 0.1; top: 50%; left: 50%;
        transform: translate(-50%, -50%) rotate(-20deg);
        z-index: -1; pointer-events: none; text-align: center;
        width: 100%; height: 100%;
    }
    .watermark img { max-width: 80%; max-height: 80%; opacity: 0.15; }
</style>`

var (
	placeholderRe = regexp.MustCompile(`<no value>|&lt;no value&gt;|\bNone\b|\bnull\b`)
	headOpenRe    = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)
)

// Sanitize strips placeholders left by missing optional fields and injects
// SafeStyle into the document head, or in front of the document when there
// is no head.
func Sanitize(doc string) string {
	doc = placeholderRe.ReplaceAllString(doc, "")
	if loc := headOpenRe.FindStringIndex(doc); loc != nil {
		var b strings.Builder
		b.Grow(len(doc) + len(SafeStyle))
		b.WriteString(doc[:loc[1]])
		b.WriteString(SafeStyle)
		b.WriteString(doc[loc[1]:])
		return b.String()
	}
	return SafeStyle + doc
}
