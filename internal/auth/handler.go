package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niyo-hr/niyo-web/internal/platform/httpx"
	"github.com/niyo-hr/niyo-web/internal/shared"
	"github.com/niyo-hr/niyo-web/internal/view"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	templates   *view.Engine
	csrfManager *shared.CSRFManager
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:      logger,
		service:     service,
		templates:   templates,
		csrfManager: csrf,
	}
}

// MountRoutes registers the auth actions on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.handleSession)
	r.With(shared.RequireSession).Post("/reset-password", h.handleResetPassword)
	r.With(shared.RequireSession).Get("/upcoming-holidays", h.handleUpcomingHolidays)
	r.With(shared.RequireSession).Get("/upcoming-birthdays", h.handleUpcomingBirthdays)
}

// MountPages registers the login and register surfaces.
func (h *Handler) MountPages(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Get("/register", h.showRegister)
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/login.html", "Sign in")
}

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/register.html", "Create your organization")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string) {
	data := view.TemplateData{
		Title:       title,
		CSRFToken:   h.csrfManager.EnsureToken(w, r),
		CurrentPath: r.URL.Path,
	}
	if err := h.templates.Render(w, name, data); err != nil {
		h.logger.Error("render auth page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.Login(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := httpx.Bind(w, r, &in); err != nil {
		httpx.WriteAction(w, r, h.logger, nil, err)
		return
	}
	result, err := h.service.RegisterOrganization(r.Context(), shared.StoreFromContext(r.Context()), in)
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Logout(r.Context(), shared.StoreFromContext(r.Context()))
	if err != nil {
		h.logger.Error("logout", slog.Any("error", err))
	}
	if !httpx.WantsJSON(r) && err == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	state := h.service.CurrentSession(r.Context(), shared.StoreFromContext(r.Context()))
	httpx.WriteAction(w, r, h.logger, state, nil)
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

func (h *Handler) handleUpcomingHolidays(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.UpcomingHolidays(r.Context(), shared.StoreFromContext(r.Context()))
	httpx.WriteAction(w, r, h.logger, result, err)
}

func (h *Handler) handleUpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.UpcomingBirthdays(r.Context(), shared.StoreFromContext(r.Context()))
	httpx.WriteAction(w, r, h.logger, result, err)
}
