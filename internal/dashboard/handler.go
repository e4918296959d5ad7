package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/platform/httpx"
	"github.com/niyo-hr/niyo-web/internal/shared"
	"github.com/niyo-hr/niyo-web/internal/view"
)

// Section is a page whose content is mounted client side from actions.
type Section struct {
	Path  string
	Title string
}

// Sections lists the signed-in surfaces besides the home page.
var Sections = []Section{
	{Path: "/employee", Title: "Employees"},
	{Path: "/employee/{id}", Title: "Employee"},
	{Path: "/leaves", Title: "Leaves"},
	{Path: "/leaves/requests", Title: "Leave requests"},
	{Path: "/leaves/apply", Title: "Apply for leave"},
}

// Handler serves the signed-in pages.
type Handler struct {
	logger      *slog.Logger
	loader      *Loader
	templates   *view.Engine
	csrfManager *shared.CSRFManager
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, loader *Loader, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, loader: loader, templates: templates, csrfManager: csrf}
}

// MountPages registers the home page and the section pages.
func (h *Handler) MountPages(r chi.Router) {
	r.Get("/", h.showHome)
	for _, section := range Sections {
		r.Get(section.Path, h.showSection(section.Title))
	}
}

func (h *Handler) showHome(w http.ResponseWriter, r *http.Request) {
	home, err := h.loader.Load(r.Context(), shared.StoreFromContext(r.Context()))
	if err != nil {
		if redirect, ok := apiclient.AsRedirect(err); ok {
			httpx.Redirect(w, r, redirect)
			return
		}
		h.logger.Error("load dashboard", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/home.html", "Dashboard", home)
}

func (h *Handler) showSection(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, "pages/section.html", title, nil)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	td := view.TemplateData{
		Title:       title,
		CSRFToken:   h.csrfManager.EnsureToken(w, r),
		CurrentPath: r.URL.Path,
		User:        view.UserFromSession(shared.SessionFromContext(r.Context())),
		Data:        data,
	}
	if err := h.templates.Render(w, name, td); err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
