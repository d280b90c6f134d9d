// Package postgres persists validation reports in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS validation_reports (
	id              TEXT PRIMARY KEY,
	created_at      TIMESTAMPTZ NOT NULL,
	cell_count      INTEGER NOT NULL,
	seconds_per_cell DOUBLE PRECISION NOT NULL,
	r_index         DOUBLE PRECISION NOT NULL,
	direction       TEXT NOT NULL,
	coherence       DOUBLE PRECISION NOT NULL,
	payload         JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_validation_reports_created_at
	ON validation_reports (created_at DESC);
`

// Connect opens a PostgreSQL connection pool and ensures the report schema
// exists.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure report schema: %w", err)
	}

	return db, nil
}
