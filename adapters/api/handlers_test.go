package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crossval/app"
	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
	"crossval/internal/engine"
	"crossval/internal/testkit"
)

func newTestServer(t *testing.T) (*Server, *testkit.InMemoryReportRepository, *testkit.FakeReportWriter) {
	repo := testkit.NewInMemoryReportRepository()
	writer := &testkit.FakeReportWriter{}
	eng := engine.New(engine.Config{})
	svc := app.NewValidationService(eng, repo, nil)
	srv := NewServer(Config{ExportDir: t.TempDir()}, svc, repo, writer, nil)
	return srv, repo, writer
}

func seedReport(t *testing.T, srv *Server, repo *testkit.InMemoryReportRepository) *report.ValidationReport {
	t.Helper()
	kit := testkit.NewKit(21)
	profiles := kit.PhysicsProfiles(12, 0.6, 0.5)
	rep, err := srv.service.Run(context.Background(), app.RunInput{
		Physics:       profiles,
		Verbalization: kit.MatchingVerbalization(profiles, 8),
	})
	if err != nil {
		t.Fatalf("Failed to seed report: %v", err)
	}
	return rep
}

// TestHealthEndpoint verifies the liveness probe.
func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health body: %s", rec.Body.String())
	}
}

// TestValidateEndpoint verifies a full run over HTTP.
func TestValidateEndpoint(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	kit := testkit.NewKit(4)
	profiles := kit.PhysicsProfiles(10, 0.5, 0.6)
	body, err := json.Marshal(validateRequest{
		Physics:       profiles,
		Verbalization: kit.MatchingVerbalization(profiles, 5),
	})
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/validate", bytes.NewReader(body))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var rep report.ValidationReport
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if rep.CellCount != 10 {
		t.Errorf("Expected 10 cells, got %d", rep.CellCount)
	}
	if repo.Count() != 1 {
		t.Errorf("Expected 1 stored report, got %d", repo.Count())
	}
}

// TestValidateEndpointContractViolation verifies 422 on invalid input.
func TestValidateEndpointContractViolation(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	body, _ := json.Marshal(validateRequest{
		Physics:       []physics.Profile{{CellIndex: 0, Timestamp: 0, HasMotion: true, Intensity: 1.5}},
		Verbalization: verbal.Profile{},
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/validate", bytes.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", rec.Code)
	}
	if repo.Count() != 0 {
		t.Errorf("Invalid run must not persist, repository holds %d", repo.Count())
	}
}

// TestValidateEndpointBadJSON verifies 400 on malformed bodies.
func TestValidateEndpointBadJSON(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

// TestListReports verifies the summary listing.
func TestListReports(t *testing.T) {
	srv, repo, _ := newTestServer(t)
	seedReport(t, srv, repo)
	seedReport(t, srv, repo)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports?limit=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("Expected 1 summary with limit=1, got %d", resp.Count)
	}
}

// TestGetReport verifies lookup and the 404 path.
func TestGetReport(t *testing.T) {
	srv, repo, _ := newTestServer(t)
	rep := seedReport(t, srv, repo)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+rep.ID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/missing-id", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for missing report, got %d", rec.Code)
	}
}

// TestReportSummaryRendersHTML verifies markdown rendering.
func TestReportSummaryRendersHTML(t *testing.T) {
	srv, repo, _ := newTestServer(t)
	rep := seedReport(t, srv, repo)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+rep.ID.String()+"/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "<table>") {
		t.Errorf("Expected rendered heading and table:\n%s", body)
	}
}

// TestExportReport verifies the workbook export path and the 404 path.
func TestExportReport(t *testing.T) {
	srv, repo, writer := newTestServer(t)
	rep := seedReport(t, srv, repo)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports/"+rep.ID.String()+"/export", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(writer.Paths) != 1 {
		t.Fatalf("Expected 1 export, got %d", len(writer.Paths))
	}
	if !strings.HasSuffix(writer.Paths[0], rep.ID.String()+".xlsx") {
		t.Errorf("Unexpected export path %q", writer.Paths[0])
	}
	if !strings.Contains(rec.Body.String(), rep.ID.String()) {
		t.Errorf("Export response missing path: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports/missing-id/export", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for missing report, got %d", rec.Code)
	}
}
