package organization

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niyo-hr/niyo-web/internal/platform/httpx"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

// Handler exposes organization actions over HTTP.
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

// MountRoutes registers organization actions. All of them are admin only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(shared.RequireAdmin)
	r.Get("/holidays", h.handleHolidayPackages)
	r.Post("/holidays", h.handleInsertHolidays)
	r.Get("/plans", h.handlePlans)
	r.Post("/plans/{priceID}/checkout", h.handleCheckout)
}

func (h *Handler) handleHolidayPackages(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.HolidayPackages(r.Context(), shared.StoreFromContext(r.Context()))
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleInsertHolidays(w http.ResponseWriter, r *http.Request) {
	var holidays []Holiday
	if err := httpx.Bind(w, r, &holidays); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.InsertHolidays(r.Context(), shared.StoreFromContext(r.Context()), holidays)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handlePlans(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SubscriptionPlans(r.Context(), shared.StoreFromContext(r.Context()))
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.BuySubscription(r.Context(), shared.StoreFromContext(r.Context()), chi.URLParam(r, "priceID"))
	httpx.WriteAction(w, r, h.logger, result, err)
}
