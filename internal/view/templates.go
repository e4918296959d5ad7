package view

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	CurrentPath string
	User        *UserView
	Data        any
}

// UserView is the signed-in principal as shown in the shell.
type UserView struct {
	Name  string
	Email string
	Role  string
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": func(value string) string {
			t, err := time.Parse(time.RFC3339, value)
			if err != nil {
				t, err = time.Parse(time.DateOnly, value)
			}
			if err != nil {
				return value
			}
			return t.Format("02 Jan 2006")
		},
		"initials": func(name string) string {
			var b strings.Builder
			for _, part := range strings.Fields(name) {
				r, _ := utf8.DecodeRuneInString(part)
				b.WriteRune(unicode.ToUpper(r))
				if b.Len() >= 2 {
					break
				}
			}
			return b.String()
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// UserFromSession projects the session onto the shell's user view.
func UserFromSession(sess *session.Session) *UserView {
	if sess == nil {
		return nil
	}
	name := sess.Name
	if name == "" {
		name = sess.Email
	}
	return &UserView{Name: name, Email: sess.Email, Role: sess.Role}
}
