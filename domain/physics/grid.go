package physics

import "crossval/domain/core"

// Grid geometry used by the external extractor when it tiles video frames
// into a single image. One grid cell corresponds to one timeline cell, so
// Interval here must equal the engine's SecondsPerCell or coverage and
// claim-to-cell matching silently degrade.

// Default extraction geometry (AI mode).
const (
	DefaultInterval   = 15.0
	DefaultGridCols   = 5
	DefaultCellWidth  = 192
	DefaultCellHeight = 108
)

// GridConfig describes the frame-grid layout of an extraction run.
type GridConfig struct {
	Interval   float64 `json:"interval"` // seconds covered by one cell
	Cols       int     `json:"cols"`
	CellWidth  int     `json:"cell_width"`
	CellHeight int     `json:"cell_height"`
}

// DefaultGridConfig returns the AI-mode extraction geometry.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Interval:   DefaultInterval,
		Cols:       DefaultGridCols,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
	}
}

// Validate checks the grid geometry.
func (g GridConfig) Validate() error {
	if g.Interval <= 0 {
		return core.NewInvalidInputError("grid.interval", "must be positive")
	}
	if g.Cols <= 0 {
		return core.NewInvalidInputError("grid.cols", "must be positive")
	}
	return nil
}

// CellCount returns the number of cells needed to cover a duration in
// seconds. Matches the extractor: int(duration/interval) + 1.
func (g GridConfig) CellCount(duration float64) int {
	if duration < 0 {
		return 0
	}
	return int(duration/g.Interval) + 1
}

// Rows returns the number of grid rows needed for a duration.
func (g GridConfig) Rows(duration float64) int {
	cells := g.CellCount(duration)
	return (cells + g.Cols - 1) / g.Cols
}

// TimestampAt returns the start timestamp of a cell index.
func (g GridConfig) TimestampAt(index int) float64 {
	return float64(index) * g.Interval
}

// CellAt returns the cell index covering a timestamp in seconds.
func (g GridConfig) CellAt(seconds float64) int {
	if seconds < 0 {
		return 0
	}
	return int(seconds / g.Interval)
}
