package testkit

import (
	"context"
	"sync"

	"crossval/domain/core"
	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
	"crossval/ports"
)

// FakeProfiler serves pre-built physics profiles regardless of source.
type FakeProfiler struct {
	Profiles []physics.Profile
	Err      error
}

func (f *FakeProfiler) ExtractProfiles(ctx context.Context, source string, grid physics.GridConfig) ([]physics.Profile, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Profiles, nil
}

// FakeNarrator serves a pre-built verbalization profile regardless of input.
type FakeNarrator struct {
	Profile verbal.Profile
	Err     error
}

func (f *FakeNarrator) ParseResponse(ctx context.Context, response string) (verbal.Profile, error) {
	if f.Err != nil {
		return verbal.Profile{}, f.Err
	}
	return f.Profile, nil
}

// FakeReportWriter records export paths instead of writing workbooks.
type FakeReportWriter struct {
	mu    sync.Mutex
	Paths []string
	Err   error
}

func (f *FakeReportWriter) WriteReport(path string, rep *report.ValidationReport) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Paths = append(f.Paths, path)
	return nil
}

// InMemoryReportRepository is a map-backed repository for tests and the CLI.
type InMemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[core.ReportID]*report.ValidationReport
	order   []core.ReportID
}

// NewInMemoryReportRepository creates an empty in-memory repository.
func NewInMemoryReportRepository() *InMemoryReportRepository {
	return &InMemoryReportRepository{
		reports: make(map[core.ReportID]*report.ValidationReport),
	}
}

func (r *InMemoryReportRepository) Save(ctx context.Context, rep *report.ValidationReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[rep.ID]; !exists {
		r.order = append(r.order, rep.ID)
	}
	r.reports[rep.ID] = rep
	return nil
}

func (r *InMemoryReportRepository) GetByID(ctx context.Context, id core.ReportID) (*report.ValidationReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, core.NewReportNotFoundError(id.String())
	}
	return rep, nil
}

func (r *InMemoryReportRepository) ListRecent(ctx context.Context, limit int) ([]ports.ReportSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ports.ReportSummary
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		rep := r.reports[r.order[i]]
		out = append(out, ports.ReportSummary{
			ID:        rep.ID,
			CreatedAt: rep.CreatedAt,
			CellCount: rep.CellCount,
			RIndex:    rep.RIndex.Value,
			Direction: rep.RIndex.Direction,
			Coherence: rep.Coherence.Score,
		})
	}
	return out, nil
}

// Count returns the number of stored reports.
func (r *InMemoryReportRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reports)
}
