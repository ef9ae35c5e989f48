package documents

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	ContentTypePDF = "application/pdf"
	ContentTypeZIP = "application/zip"

	timestampLayout = "20060102_150405"
)

type TemplateExecutor interface {
	Execute(name string, data any) (string, error)
}

// Renderer turns sanitised HTML into PDF bytes.
type Renderer interface {
	Render(html string) ([]byte, error)
}

// FileStore persists generated files under an employee-scoped directory and
// returns the stored path.
type FileStore interface {
	Save(ctx context.Context, employeeID, name string, data []byte) (string, error)
}

type Recorder interface {
	RecordRender(docType string, ok bool)
}

// Artifact is a generated download.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
	Paths       []string
}

type Service struct {
	composer  *Composer
	templates TemplateExecutor
	renderer  Renderer
	files     FileStore
	batch     *BatchPackager
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(composer *Composer, templates TemplateExecutor, renderer Renderer, files FileStore, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		composer:  composer,
		templates: templates,
		renderer:  renderer,
		files:     files,
		recorder:  recorder,
		logger:    logger,
		now:       composer.now,
	}
	s.batch = &BatchPackager{render: s.renderPDF, templates: templates, files: files, now: composer.now}
	return s
}

// Preview returns the populated HTML for the request's document type.
func (s *Service) Preview(req Request) (string, error) {
	comp, err := s.composer.Compose(req)
	if err != nil {
		return "", err
	}
	return s.templates.Execute(comp.Template, comp.Context)
}

// PreviewDocument returns the populated HTML for one document of the
// request.
func (s *Service) PreviewDocument(req Request, docType DocumentType) (string, error) {
	comp, err := s.composer.ComposeFor(req, docType)
	if err != nil {
		return "", err
	}
	return s.templates.Execute(comp.Template, comp.Context)
}

// Generate renders the request into a PDF, or into a ZIP of per-month PDFs
// for multi-month salary slips.
func (s *Service) Generate(ctx context.Context, req Request) (Artifact, error) {
	comp, err := s.composer.Compose(req)
	if err != nil {
		return Artifact{}, err
	}

	if req.IsBatch() {
		artifact, err := s.batch.Package(ctx, comp, req.SelectedMonths())
		if err != nil {
			s.logger.Error("salary slip batch failed", "employeeId", req.EmployeeID, "err", err)
			return Artifact{}, err
		}
		s.logger.Info("salary slip batch generated", "employeeId", req.EmployeeID, "months", len(artifact.Paths), "archive", artifact.Name)
		return artifact, nil
	}

	if months := req.SelectedMonths(); req.DocumentType == SalarySlip && len(months) == 1 {
		comp.Context.CurrentMonth = months[0]
	}

	html, err := s.templates.Execute(comp.Template, comp.Context)
	if err != nil {
		return Artifact{}, err
	}
	data, err := s.renderPDF(req.DocumentType, html)
	if err != nil {
		s.logger.Error("document render failed", "employeeId", req.EmployeeID, "documentType", req.DocumentType, "err", err)
		return Artifact{}, err
	}

	name := fmt.Sprintf("%s_%s.pdf", req.DocumentType, s.now().Format(timestampLayout))
	stored, err := s.files.Save(ctx, req.EmployeeID, name, data)
	if err != nil {
		return Artifact{}, fmt.Errorf("store %s: %w", name, err)
	}
	s.logger.Info("document generated", "employeeId", req.EmployeeID, "documentType", req.DocumentType, "path", stored)
	return Artifact{Name: name, ContentType: ContentTypePDF, Data: data, Paths: []string{stored}}, nil
}

func (s *Service) renderPDF(docType DocumentType, html string) ([]byte, error) {
	data, err := s.renderer.Render(Sanitize(html))
	if err == nil && len(data) == 0 {
		err = ErrEmptyRender
	}
	if s.recorder != nil {
		s.recorder.RecordRender(docType.String(), err == nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return data, nil
}
