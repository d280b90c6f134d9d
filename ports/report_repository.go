package ports

import (
	"context"
	"time"

	"crossval/domain/core"
	"crossval/domain/report"
)

// ReportSummary is the listing projection of a stored validation report.
type ReportSummary struct {
	ID        core.ReportID
	CreatedAt time.Time
	CellCount int
	RIndex    float64
	Direction report.Direction
	Coherence float64
}

// ReportRepositoryPort persists validation reports.
type ReportRepositoryPort interface {
	Save(ctx context.Context, rep *report.ValidationReport) error
	GetByID(ctx context.Context, id core.ReportID) (*report.ValidationReport, error)
	ListRecent(ctx context.Context, limit int) ([]ReportSummary, error)
}
