package adminhandler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdocs/internal/domain/auth"
	"hrdocs/internal/domain/documents"
	"hrdocs/internal/domain/employee"
	"hrdocs/internal/platform/storage"
	"hrdocs/internal/transport/http/api"
	"hrdocs/internal/transport/http/middleware"
	"hrdocs/internal/transport/http/shared"
)

type Authenticator interface {
	middleware.Authorizer
	Login(password string) (auth.Session, error)
}

type DocumentFiles interface {
	List(ctx context.Context) (map[string][]string, error)
	Open(ctx context.Context, employeeID, name string) (io.ReadCloser, error)
}

type EmployeeLookup interface {
	GetByCode(ctx context.Context, code string) (employee.Employee, error)
}

type Handler struct {
	Auth      Authenticator
	Files     DocumentFiles
	Employees EmployeeLookup
	Logger    *slog.Logger

	loginLimit  int
	loginWindow time.Duration
}

func NewHandler(authn Authenticator, files DocumentFiles, employees EmployeeLookup, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Auth:        authn,
		Files:       files,
		Employees:   employees,
		Logger:      logger,
		loginLimit:  10,
		loginWindow: time.Minute,
	}
}

type loginPayload struct {
	Password string `json:"password"`
}

type employeeDocuments struct {
	EmployeeID string   `json:"employeeId"`
	FullName   string   `json:"fullName,omitempty"`
	Files      []string `json:"files"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.With(middleware.RateLimit(h.loginLimit, h.loginWindow)).Post("/login", h.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.Auth))
			r.Get("/documents", h.handleListDocuments)
			r.Get("/documents/{employeeID}/{fileName}", h.handleDownload)
		})
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	session, err := h.Auth.Login(payload.Password)
	switch {
	case errors.Is(err, auth.ErrAdminDisabled):
		api.Fail(w, http.StatusForbidden, "admin_disabled", "admin access is not configured", reqID)
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	case err != nil:
		h.Logger.Error("admin login failed", "requestId", reqID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "login failed", reqID)
		return
	}
	api.Success(w, session, reqID)
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	listing, err := h.Files.List(r.Context())
	if err != nil {
		h.Logger.Error("list generated documents failed", "requestId", reqID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "could not list documents", reqID)
		return
	}

	ids := make([]string, 0, len(listing))
	for id := range listing {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]employeeDocuments, 0, len(ids))
	for _, id := range ids {
		entry := employeeDocuments{EmployeeID: id, Files: listing[id]}
		if h.Employees != nil {
			emp, err := h.Employees.GetByCode(r.Context(), id)
			switch {
			case err == nil:
				entry.FullName = emp.FullName
			case !errors.Is(err, employee.ErrEmployeeNotFound):
				h.Logger.Warn("employee lookup failed", "requestId", reqID, "employeeId", id, "err", err)
			}
		}
		out = append(out, entry)
	}
	api.Success(w, out, reqID)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	fileName := chi.URLParam(r, "fileName")

	rc, err := h.Files.Open(r.Context(), employeeID, fileName)
	switch {
	case errors.Is(err, storage.ErrInvalidPath):
		api.Fail(w, http.StatusBadRequest, "invalid_path", "invalid file name", reqID)
		return
	case errors.Is(err, storage.ErrFileNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "document not found", reqID)
		return
	case err != nil:
		h.Logger.Error("open document failed", "requestId", reqID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "could not open document", reqID)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "could not read document", reqID)
		return
	}
	api.Attachment(w, fileName, contentTypeFor(fileName), data)
}

func contentTypeFor(name string) string {
	switch path.Ext(name) {
	case ".zip":
		return documents.ContentTypeZIP
	case ".pdf":
		return documents.ContentTypePDF
	}
	return "application/octet-stream"
}
