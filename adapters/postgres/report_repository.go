package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"crossval/domain/core"
	"crossval/domain/report"
	"crossval/ports"
)

// ReportRepository stores validation reports with headline metrics in scalar
// columns and the full report as a JSONB payload.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts a validation report. Saving an existing ID replaces it.
func (r *ReportRepository) Save(ctx context.Context, rep *report.ValidationReport) error {
	query := `
		INSERT INTO validation_reports (
			id, created_at, cell_count, seconds_per_cell,
			r_index, direction, coherence, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			cell_count = EXCLUDED.cell_count,
			seconds_per_cell = EXCLUDED.seconds_per_cell,
			r_index = EXCLUDED.r_index,
			direction = EXCLUDED.direction,
			coherence = EXCLUDED.coherence,
			payload = EXCLUDED.payload`

	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		rep.ID.String(),
		rep.CreatedAt,
		rep.CellCount,
		rep.SecondsPerCell,
		rep.RIndex.Value,
		string(rep.RIndex.Direction),
		rep.Coherence.Score,
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

// GetByID loads the full report payload for one ID.
func (r *ReportRepository) GetByID(ctx context.Context, id core.ReportID) (*report.ValidationReport, error) {
	query := `SELECT payload FROM validation_reports WHERE id = $1`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewReportNotFoundError(id.String())
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var rep report.ValidationReport
	if err := json.Unmarshal(payload, &rep); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report payload: %w", err)
	}

	return &rep, nil
}

// ListRecent returns summaries of the newest reports, most recent first.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]ports.ReportSummary, error) {
	query := `
		SELECT id, created_at, cell_count, r_index, direction, coherence
		FROM validation_reports
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent reports: %w", err)
	}
	defer rows.Close()

	var summaries []ports.ReportSummary
	for rows.Next() {
		var s ports.ReportSummary
		var id, direction string

		if err := rows.Scan(&id, &s.CreatedAt, &s.CellCount, &s.RIndex, &direction, &s.Coherence); err != nil {
			return nil, fmt.Errorf("failed to scan report summary: %w", err)
		}
		s.ID = core.ReportID(id)
		s.Direction = report.Direction(direction)
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Ensure ReportRepository implements ReportRepositoryPort
var _ ports.ReportRepositoryPort = (*ReportRepository)(nil)
