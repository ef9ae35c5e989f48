package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontSize       = 11
	lineHeight     = 5.5
	watermarkAlpha = 0.1
	watermarkWidth = 0.6
)

// PDFRenderer turns sanitised HTML into an A4 PDF using gofpdf. Watermark
// images referenced by the document are resolved against AssetDir. The body
// font and the watermark opacity and width come from the document styles.
type PDFRenderer struct {
	AssetDir string
	Creator  string
}

func NewPDFRenderer(assetDir string) *PDFRenderer {
	return &PDFRenderer{AssetDir: assetDir, Creator: "hrdocs"}
}

func (r *PDFRenderer) Render(doc string) ([]byte, error) {
	l := lower(doc)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreator(r.Creator, false)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)

	if path := r.watermarkPath(l.watermark); path != "" {
		alpha := l.styles.watermarkOpacity(watermarkAlpha)
		info := pdf.RegisterImageOptions(path, gofpdf.ImageOptions{ReadDpi: true})
		if pdf.Ok() && info != nil && info.Width() > 0 {
			pageW, pageH := pdf.GetPageSize()
			w := pageW * l.styles.watermarkWidth(watermarkWidth)
			h := w * info.Height() / info.Width()
			pdf.SetHeaderFunc(func() {
				pdf.SetAlpha(alpha, "Normal")
				pdf.ImageOptions(path, (pageW-w)/2, (pageH-h)/2, w, h, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
				pdf.SetAlpha(1, "Normal")
			})
		}
	}

	pdf.AddPage()
	pdf.SetFont(l.styles.font(), "", fontSize)
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	writer := pdf.HTMLBasicNew()
	writer.Write(lineHeight, translate(l.body))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) watermarkPath(src string) string {
	if src == "" || r.AssetDir == "" {
		return ""
	}
	path := filepath.Join(r.AssetDir, filepath.Base(src))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
