package documents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInjectsIntoHead(t *testing.T) {
	out := Sanitize(`<html><head><title>x</title></head><body>Hi</body></html>`)
	assert.True(t, strings.HasPrefix(out, "<html><head>"+SafeStyle+"<title>"))
	assert.Equal(t, 1, strings.Count(out, "border-collapse"))
}

func TestSanitizeHandlesHeadAttributes(t *testing.T) {
	out := Sanitize(`<HEAD lang="en"><meta charset="utf-8"></HEAD>`)
	assert.True(t, strings.HasPrefix(out, `<HEAD lang="en">`+SafeStyle))
}

func TestSanitizePrependsWithoutHead(t *testing.T) {
	out := Sanitize(`<p>body only</p>`)
	assert.Equal(t, SafeStyle+`<p>body only</p>`, out)
}

func TestSanitizeStripsPlaceholders(t *testing.T) {
	out := Sanitize(`<p>PAN: None</p><p>Bank: null</p><p>IFSC: <no value></p><p>&lt;no value&gt;</p><p>Nonetheless</p>`)
	assert.NotContains(t, out, "None<")
	assert.NotContains(t, out, "null")
	assert.NotContains(t, out, "no value")
	assert.Contains(t, out, "<p>PAN: </p>")
	assert.Contains(t, out, "Nonetheless", "only whole-word placeholders are removed")
}

// The placeholder words are removed wherever they stand alone, including in
// real values. Other casings and longer words are left alone.
func TestSanitizePlaceholderWordsInData(t *testing.T) {
	out := Sanitize(`<p>Anna null</p><p>Anna Null</p><p>None Ltd</p><p>annulled nullable NONE</p>`)
	assert.Contains(t, out, "<p>Anna </p>")
	assert.Contains(t, out, "<p>Anna Null</p>")
	assert.Contains(t, out, "<p> Ltd</p>")
	assert.Contains(t, out, "<p>annulled nullable NONE</p>")
}
