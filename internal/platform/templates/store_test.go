package templates

import (
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTemplatesParse(t *testing.T) {
	store, err := New("")
	require.NoError(t, err)
	assert.Equal(t, []string{"offer_letter", "relieving_letter", "salary_slip"}, store.Names())
}

func TestLookupMissingTemplate(t *testing.T) {
	store, err := New("")
	require.NoError(t, err)

	_, err = store.Lookup("appraisal_letter")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = store.Execute("appraisal_letter", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestExecuteWithFuncs(t *testing.T) {
	fsys := fstest.MapFS{
		"greeting.html": &fstest.MapFile{Data: []byte(`<p>{{upper .Name}} earns {{amount .Pay}}</p>`)},
	}
	store, err := NewFromFS(fsys, "*.html")
	require.NoError(t, err)

	out, err := store.Execute("greeting", map[string]any{
		"Name": "asha",
		"Pay":  decimal.RequireFromString("1234.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>ASHA earns 1234.50</p>", out)
}

func TestNewFromDir(t *testing.T) {
	_, err := New(t.TempDir())
	assert.Error(t, err, "an empty directory has no templates to parse")
}
