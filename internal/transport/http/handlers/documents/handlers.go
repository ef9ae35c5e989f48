package documentshandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrdocs/internal/domain/company"
	"hrdocs/internal/domain/documents"
	"hrdocs/internal/domain/employee"
	"hrdocs/internal/domain/payroll"
	"hrdocs/internal/platform/session"
	"hrdocs/internal/platform/templates"
	"hrdocs/internal/transport/http/api"
	"hrdocs/internal/transport/http/middleware"
	"hrdocs/internal/transport/http/shared"
)

const restartPath = "/api/v1/documents"

type EmployeeResolver interface {
	Resolve(ctx context.Context, sub employee.Submission) (employee.Employee, error)
}

type DocumentService interface {
	Preview(req documents.Request) (string, error)
	PreviewDocument(req documents.Request, docType documents.DocumentType) (string, error)
	Generate(ctx context.Context, req documents.Request) (documents.Artifact, error)
}

type Handler struct {
	Employees EmployeeResolver
	Sessions  session.Store
	Documents DocumentService
	Logger    *slog.Logger
}

func NewHandler(employees EmployeeResolver, sessions session.Store, docs DocumentService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Employees: employees, Sessions: sessions, Documents: docs, Logger: logger}
}

type submitResponse struct {
	Token        string `json:"token"`
	EmployeeID   string `json:"employeeId"`
	DocumentType string `json:"documentType"`
	PreviewURL   string `json:"previewUrl"`
	GenerateURL  string `json:"generateUrl"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Post("/", h.handleSubmit)
		r.Get("/{token}/preview", h.handlePreview)
		r.Get("/{token}/preview/{docType}", h.handlePreviewDocument)
		r.Post("/{token}/generate", h.handleGenerate)
		r.Delete("/{token}", h.handleDiscard)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req documents.Request
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}

	v := shared.NewValidator()
	v.Required("companyId", req.CompanyID, "is required")
	v.Required("fullName", req.FullName, "is required")
	docType, err := documents.ParseDocumentType(string(req.DocumentType))
	switch {
	case strings.TrimSpace(string(req.DocumentType)) == "":
		v.Add("documentType", "is required")
	case err != nil:
		v.Add("documentType", "is not a supported document type")
	}
	if v.Reject(w, reqID) {
		return
	}
	req.DocumentType = docType
	req.CompanyID = strings.TrimSpace(req.CompanyID)

	emp, err := h.Employees.Resolve(r.Context(), submissionFrom(req))
	if err != nil {
		h.Logger.Error("employee resolve failed", "requestId", reqID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_store_failed", "could not record employee", reqID)
		return
	}
	req = req.WithEmployeeID(emp.Code())

	token := session.NewToken()
	if err := h.Sessions.Save(r.Context(), token, req); err != nil {
		h.Logger.Error("session save failed", "requestId", reqID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "session_failed", "could not store the request", reqID)
		return
	}

	api.Created(w, submitResponse{
		Token:        token,
		EmployeeID:   req.EmployeeID,
		DocumentType: req.DocumentType.String(),
		PreviewURL:   restartPath + "/" + token + "/preview",
		GenerateURL:  restartPath + "/" + token + "/generate",
	}, reqID)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.loadRequest(w, r)
	if !ok {
		return
	}
	html, err := h.Documents.Preview(req)
	if err != nil {
		h.writeDocumentError(w, r, err)
		return
	}
	api.HTML(w, html)
}

func (h *Handler) handlePreviewDocument(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	docType, err := documents.ParseDocumentType(chi.URLParam(r, "docType"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_document_type", err.Error(), reqID)
		return
	}
	req, ok := h.loadRequest(w, r)
	if !ok {
		return
	}
	html, err := h.Documents.PreviewDocument(req, docType)
	if err != nil {
		h.writeDocumentError(w, r, err)
		return
	}
	api.HTML(w, html)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.loadRequest(w, r)
	if !ok {
		return
	}
	artifact, err := h.Documents.Generate(r.Context(), req)
	if err != nil {
		h.writeDocumentError(w, r, err)
		return
	}
	api.Attachment(w, artifact.Name, artifact.ContentType, artifact.Data)
}

// handleDiscard drops a stored request. Unknown tokens are not an error.
func (h *Handler) handleDiscard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Sessions.Delete(r.Context(), chi.URLParam(r, "token")); err != nil {
		h.Logger.Error("session delete failed", "requestId", reqID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "session_failed", "could not discard the request", reqID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadRequest resolves the session token. A missing or expired session
// sends the caller back to the submit step.
func (h *Handler) loadRequest(w http.ResponseWriter, r *http.Request) (documents.Request, bool) {
	reqID := middleware.GetRequestID(r.Context())
	req, err := h.Sessions.Load(r.Context(), chi.URLParam(r, "token"))
	if err == nil {
		return req, true
	}
	if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrInvalidToken) {
		api.FailWithDetails(w, http.StatusConflict, "session_missing",
			"no submitted document request for this token; submit the form again",
			map[string]string{"restart": restartPath}, reqID)
		return documents.Request{}, false
	}
	h.Logger.Error("session load failed", "requestId", reqID, "err", err)
	api.Fail(w, http.StatusInternalServerError, "session_failed", "could not load the request", reqID)
	return documents.Request{}, false
}

func (h *Handler) writeDocumentError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, company.ErrCompanyNotFound):
		api.Fail(w, http.StatusNotFound, "company_not_found", err.Error(), reqID)
	case errors.Is(err, templates.ErrTemplateNotFound):
		api.Fail(w, http.StatusUnprocessableEntity, "template_not_found", err.Error(), reqID)
	case errors.Is(err, documents.ErrUnknownDocumentType):
		api.Fail(w, http.StatusBadRequest, "invalid_document_type", err.Error(), reqID)
	case errors.Is(err, documents.ErrMonthRenderFailed), errors.Is(err, documents.ErrRenderFailed):
		api.Fail(w, http.StatusBadGateway, "render_failed", err.Error(), reqID)
	default:
		h.Logger.Error("document request failed", "requestId", reqID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "document generation failed", reqID)
	}
}

func submissionFrom(req documents.Request) employee.Submission {
	sub := employee.Submission{
		FullName:          req.FullName,
		NationalID:        req.NationalID,
		Designation:       req.Designation,
		AnnualCTC:         payroll.ParseAmount(req.AnnualCTC).Value,
		IncrementPerMonth: payroll.ParseAmount(req.IncrementPerMonth).Value,
	}
	if resigned := req.Resignation(); resigned.Valid {
		t := resigned.Time
		sub.ResignationDate = &t
	}
	return sub
}
