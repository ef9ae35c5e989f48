package companieshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrdocs/internal/domain/company"
	"hrdocs/internal/transport/http/api"
	"hrdocs/internal/transport/http/middleware"
)

type Lister interface {
	List() []company.Company
}

type Handler struct {
	Companies Lister
}

func NewHandler(companies Lister) *Handler {
	return &Handler{Companies: companies}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/companies", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Companies.List(), middleware.GetRequestID(r.Context()))
}
