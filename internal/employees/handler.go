package employees

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niyo-hr/niyo-web/internal/platform/httpx"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

// Handler exposes employee actions over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers employee actions.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(shared.RequireSession)
	r.Post("/list", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Get("/{id}/hierarchy", h.handleHierarchy)
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireAdmin)
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
		r.Post("/reset-password", h.handleResetPassword)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	in := ListInput{Page: 1, Limit: 10}
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.List(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context(), shared.StoreFromContext(r.Context()), chi.URLParam(r, "id"))
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Hierarchy(r.Context(), shared.StoreFromContext(r.Context()), chi.URLParam(r, "id"))
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in EmployeeInput
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.Create(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in EmployeeInput
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.Update(r.Context(), shared.StoreFromContext(r.Context()), chi.URLParam(r, "id"), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in ResetPasswordInput
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.ResetPassword(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}
