package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"crossval/app"
	"crossval/domain/core"
	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
)

const defaultListLimit = 20

// validateRequest is the POST /api/validate body: the raw physics timeline
// and the parsed verbalization.
type validateRequest struct {
	Physics       []physics.Profile `json:"physics_profiles"`
	Verbalization verbal.Profile    `json:"verbalization_profile"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rep, err := s.service.Run(r.Context(), app.RunInput{
		Physics:       req.Physics,
		Verbalization: req.Verbalization,
	})
	if err != nil {
		if core.IsInvalidInput(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.logger.Error("validation run failed: %v", err)
		http.Error(w, "Validation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, rep)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	summaries, err := s.repo.ListRecent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list reports: %v", err)
		http.Error(w, "Failed to load reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports": summaries,
		"count":   len(summaries),
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleReportSummary renders the markdown digest as HTML.
func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}

	digest := s.summarizer.Summarize(rep)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML([]byte(digest), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(rendered)
}

// handleExportReport writes the report workbook into the export directory.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		s.logger.Error("failed to create export dir %s: %v", s.exportDir, err)
		http.Error(w, "Failed to export report", http.StatusInternalServerError)
		return
	}

	path := filepath.Join(s.exportDir, rep.ID.String()+".xlsx")
	if err := s.writer.WriteReport(path, rep); err != nil {
		s.logger.Error("failed to export report %s: %v", rep.ID, err)
		http.Error(w, "Failed to export report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

func (s *Server) loadReport(w http.ResponseWriter, r *http.Request) (*report.ValidationReport, bool) {
	id := core.ReportID(chi.URLParam(r, "id"))

	loaded, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		if core.IsNotFound(err) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return nil, false
		}
		s.logger.Error("failed to load report %s: %v", id, err)
		http.Error(w, "Failed to load report", http.StatusInternalServerError)
		return nil, false
	}
	return loaded, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
