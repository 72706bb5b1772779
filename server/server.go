// Package server exposes the dashboard over HTTP: an HTML page with the year
// and genre inputs, plus JSON and CSV endpoints for the same data.
package server

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"bestseller-dashboard/services"
	"bestseller-dashboard/storage"
	"bestseller-dashboard/utils"
)

//go:embed templates/*.html
var templates embed.FS

// Server holds dependencies for HTTP handlers.
type Server struct {
	source    storage.BookSource
	dashboard *services.Dashboard
	filter    services.Filterer
	page      *template.Template
	router    *chi.Mux
	logger    *utils.Logger
	csvSep    rune
}

// Option configures a Server.
type Option func(*Server)

// WithCSVSeparator sets the field separator used by the CSV download.
func WithCSVSeparator(sep rune) Option {
	return func(s *Server) { s.csvSep = sep }
}

// New creates a server with all routes configured. The source is consulted
// on every request; it is expected to cache.
func New(source storage.BookSource, dashboard *services.Dashboard, logger *utils.Logger, opts ...Option) *Server {
	s := &Server{
		source:    source,
		dashboard: dashboard,
		filter:    services.NewSelectionFilter(logger),
		page:      template.Must(template.New("dashboard.html").Funcs(pageFuncs).ParseFS(templates, "templates/dashboard.html")),
		router:    chi.NewRouter(),
		logger:    logger,
		csvSep:    ';',
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(s.logger.Writer(), "", 0),
		NoColor: true,
	}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/", s.handleIndex)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/books", s.handleBooks)
		r.Get("/books.csv", s.handleBooksCSV)
	})
}
