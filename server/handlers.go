package server

import (
	"bytes"
	"errors"
	"net/http"

	"bestseller-dashboard/models"
	"bestseller-dashboard/services"
	"bestseller-dashboard/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	success(w, map[string]string{"status": "healthy"}, s.logger)
}

// handleOptions lists every year and genre the inputs may offer.
// GET /api/options
func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	table, err := s.source.Load()
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	success(w, services.Options(table), s.logger)
}

// handleDashboard returns the rendered sections for the selection.
// GET /api/dashboard?year=2019&genre=Fiction
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	table, sel, ok := s.loadSelection(w, r)
	if !ok {
		return
	}

	view := s.dashboard.Build(table, sel)
	env := Envelope{Success: true, Data: view}
	if view.Warning != nil {
		env.Message = view.Warning.Message
	}
	writeJSON(w, http.StatusOK, env, s.logger)
}

// handleBooks returns the filtered rows themselves.
// GET /api/books?year=..&genre=..
func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	table, sel, ok := s.loadSelection(w, r)
	if !ok {
		return
	}

	if warn := services.CheckSelection(sel); warn != nil {
		writeJSON(w, http.StatusOK, Envelope{Success: true, Data: []models.Book{}, Message: warn.Message}, s.logger)
		return
	}

	filtered := s.filter.Filter(table, sel)
	books := filtered.Books
	if books == nil {
		books = []models.Book{}
	}
	success(w, books, s.logger)
}

// handleBooksCSV streams the filtered rows in the source column layout.
// An incomplete selection yields a header-only file.
// GET /api/books.csv?year=..&genre=..
func (s *Server) handleBooksCSV(w http.ResponseWriter, r *http.Request) {
	table, sel, ok := s.loadSelection(w, r)
	if !ok {
		return
	}

	var rows []models.Book
	if services.CheckSelection(sel) == nil {
		rows = s.filter.Filter(table, sel).Books
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bestsellers.csv"`)

	cw, err := storage.NewCSVStream(w, s.csvSep)
	if err != nil {
		s.logger.Error("[server] CSV header write failed: %v", err)
		return
	}
	if err := cw.Write(r.Context(), rows); err != nil {
		s.logger.Error("[server] CSV write failed: %v", err)
	}
	if err := cw.Close(); err != nil {
		s.logger.Error("[server] CSV flush failed: %v", err)
	}
}

// handleIndex renders the HTML dashboard. The raw data block always lists the
// whole table; the sections below it follow the selection. The form submits
// back to / with the same query parameters the JSON endpoints take.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Amazon Bestseller Books: Exploratory Analysis"}

	table, err := s.source.Load()
	if err != nil {
		s.logger.Error("[server] %v", err)
		data.Error = loadMessage(err)
		s.renderPage(w, http.StatusInternalServerError, data)
		return
	}

	data.Options = services.Options(table)
	data.Books = table.Books
	sel, err := ParseSelection(r.URL.Query(), table)
	if err != nil {
		data.Error = loadMessage(err)
		data.Selection = models.DefaultSelection(table)
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	data.Selection = sel
	view := s.dashboard.Build(table, sel)
	data.View = &view
	s.renderPage(w, http.StatusOK, data)
}

func (s *Server) loadSelection(w http.ResponseWriter, r *http.Request) (models.BookTable, models.Selection, bool) {
	table, err := s.source.Load()
	if err != nil {
		handleError(w, err, s.logger)
		return models.BookTable{}, models.Selection{}, false
	}

	sel, err := ParseSelection(r.URL.Query(), table)
	if err != nil {
		handleError(w, err, s.logger)
		return models.BookTable{}, models.Selection{}, false
	}
	return table, sel, true
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("[server] Failed to render dashboard page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func loadMessage(err error) string {
	var domainErr *models.Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "internal server error"
}
