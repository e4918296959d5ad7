package leaves

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/niyo-hr/niyo-web/internal/platform/httpx"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

const msgNotANumber = "Must be a whole number"

// Handler exposes leave actions over HTTP.
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

// MountRoutes registers leave actions.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(shared.RequireSession)
	r.Get("/", h.handleList)
	r.Post("/", h.handleApply)
	r.Get("/employee-requests", h.handleEmployeeRequests)
	r.Get("/balance", h.handleBalance)
	r.Delete("/{id}", h.handleCancel)
	r.With(shared.RequireAdmin).Put("/status", h.handleUpdateStatus)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := ListInput{
		Status:      q.Get("status"),
		Search:      q.Get("search"),
		LeaveTypeID: q.Get("leaveTypeId"),
		StartDate:   q.Get("startDate"),
		EndDate:     q.Get("endDate"),
	}
	var err error
	if in.Page, err = queryInt(r, "page"); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	if in.Limit, err = queryInt(r, "limit"); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.List(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := EmployeeRequestsInput{
		EmployeeID: q.Get("employeeId"),
		Status:     q.Get("status"),
	}
	var err error
	if in.Page, err = queryInt(r, "page"); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	if in.Limit, err = queryInt(r, "limit"); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.EmployeeRequests(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.TotalBalance(r.Context(), shared.StoreFromContext(r.Context()))
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	var in ApplyInput
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.Apply(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in UpdateStatusInput
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.UpdateStatus(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	var in CancelInput
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.Cancel(r.Context(), shared.StoreFromContext(r.Context()), chi.URLParam(r, "id"), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.Invalid(key, msgNotANumber)
	}
	return n, nil
}
