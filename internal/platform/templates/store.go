package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed documents/*.html
var embedded embed.FS

const pattern = "documents/*.html"

var ErrTemplateNotFound = errors.New("template not found")

// Store holds the parsed document templates. Templates are addressed by
// their file name without the .html suffix.
type Store struct {
	set *template.Template
}

var funcs = template.FuncMap{
	"amount": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"join":   strings.Join,
	"upper":  strings.ToUpper,
}

// New parses the embedded templates, or the templates under dir when dir
// is set.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) != "" {
		return NewFromFS(os.DirFS(dir), "*.html")
	}
	return NewFromFS(embedded, pattern)
}

func NewFromFS(fsys fs.FS, glob string) (*Store, error) {
	set, err := template.New("documents").Funcs(funcs).ParseFS(fsys, glob)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Store{set: set}, nil
}

func (s *Store) Lookup(name string) (*template.Template, error) {
	tmpl := s.set.Lookup(name + ".html")
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return tmpl, nil
}

// Execute populates the named template with data.
func (s *Store) Execute(name string, data any) (string, error) {
	tmpl, err := s.Lookup(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (s *Store) Names() []string {
	var names []string
	for _, t := range s.set.Templates() {
		if name, ok := strings.CutSuffix(t.Name(), ".html"); ok && name != "layout" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
