// Package api exposes validation runs and stored reports over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"crossval/app"
	"crossval/internal"
	"crossval/ports"
)

// Config holds server-level settings.
type Config struct {
	ExportDir string
}

// Server is the HTTP surface of the validation engine.
type Server struct {
	router     *chi.Mux
	service    *app.ValidationService
	summarizer *app.ReportSummarizer
	repo       ports.ReportRepositoryPort
	writer     ports.ReportWriterPort
	exportDir  string
	logger     *internal.Logger
}

// NewServer creates the HTTP server and wires its routes.
func NewServer(cfg Config, service *app.ValidationService, repo ports.ReportRepositoryPort, writer ports.ReportWriterPort, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:     chi.NewRouter(),
		service:    service,
		summarizer: app.NewReportSummarizer(),
		repo:       repo,
		writer:     writer,
		exportDir:  cfg.ExportDir,
		logger:     logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/validate", s.handleValidate)
	s.router.Get("/api/reports", s.handleListReports)
	s.router.Get("/api/reports/{id}", s.handleGetReport)
	s.router.Get("/api/reports/{id}/summary", s.handleReportSummary)
	s.router.Post("/api/reports/{id}/export", s.handleExportReport)
}

// Handler returns the router for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
