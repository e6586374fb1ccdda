package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page names.
const (
	OrdersIndex     = "orders_index"
	OrdersDetails   = "orders_details"
	OrdersCreate    = "orders_create"
	OrdersEdit      = "orders_edit"
	OrdersDelete    = "orders_delete"
	ManagementIndex = "management_index"
	ErrorPage       = "error"
)

// CSRFFieldName is the hidden form field carrying the anti-forgery token.
const CSRFFieldName = "__RequestVerificationToken"

// Page is the data every template receives.
type Page struct {
	Title     string
	CSRFToken string
	Data      any
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"csrfField": func() string { return CSRFFieldName },
	"fieldError": func(errs map[string]string, key string) string {
		if errs == nil {
			return ""
		}
		return errs[key]
	},
	"formatDate": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"lineKey": func(i int, field string) string {
		return fmt.Sprintf("orderProducts[%d].%s", i, field)
	},
}

// New parses the layout with each page template.
func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	pages := map[string]*template.Template{}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	if _, ok := pages[ErrorPage]; !ok {
		return nil, fmt.Errorf("error template missing")
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. Output is buffered so a template failure
// still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderError writes the plain error page.
func (r *Renderer) RenderError(w http.ResponseWriter, status int, message string) {
	page := Page{Title: http.StatusText(status), Data: ErrorData{Status: status, Message: message}}
	if err := r.Render(w, status, ErrorPage, page); err != nil {
		http.Error(w, message, status)
	}
}

// ErrorData feeds the error template.
type ErrorData struct {
	Status  int
	Message string
}
