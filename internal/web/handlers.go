// Package web serves the activity board UI.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/board"
)

//go:embed templates/index.html.tmpl
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html.tmpl"))

// Option configures optional behaviour for the Handler.
type Option func(*Handler)

// WithLogger overrides the request and render logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// Handler translates HTTP requests into board events and renders the
// resulting snapshot.
type Handler struct {
	board  *board.Controller
	logger *log.Logger
}

// NewHandler builds a Handler over the given controller.
func NewHandler(b *board.Controller, opts ...Option) *Handler {
	h := &Handler{
		board:  b,
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes assembles the router with the middleware stack.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(h.logRequests)

	r.Get("/", h.index)
	r.Post("/signup", h.signup)
	r.Post("/unregister", h.unregister)
	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	view := struct {
		Snapshot board.Snapshot
		Banner   board.Banner
	}{
		Snapshot: h.board.Snapshot(),
		Banner:   h.board.Banner(),
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, view); err != nil {
		h.logger.Printf("render index: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	h.board.Dispatch(r.Context(), board.SubmitSignup{
		Activity: r.PostFormValue("activity"),
		Email:    r.PostFormValue("email"),
	})

	// POST/redirect/GET; the re-rendered form comes back blank.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	h.board.Dispatch(r.Context(), board.ClickDelete{
		Activity: r.PostFormValue("activity"),
		Email:    r.PostFormValue("email"),
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
