// Package engine computes agreement metrics between two independent
// observers of a segmented video timeline: the physics profiler (pixel/audio
// measurement per cell) and the verbalization profile extracted from a
// vision-language model's free-text response. Every operation is a
// deterministic, side-effect-free transform; disjoint runs may execute in
// parallel with no coordination.
package engine

import (
	"time"

	"crossval/domain/core"
	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
)

// DefaultSecondsPerCell matches the extractor's AI-mode grid interval.
const DefaultSecondsPerCell = physics.DefaultInterval

// Config holds the engine's single tunable. SecondsPerCell is the temporal
// span each cell covers when matching claims to cells; it must equal the
// external profiler's grid interval. It doubles as the coverage tolerance.
type Config struct {
	SecondsPerCell float64
}

// Engine validates a verbalization profile against physics profiles.
type Engine struct {
	secondsPerCell float64
}

// New creates an engine. A zero SecondsPerCell takes the default; a negative
// value is a configuration error surfaced on the first Validate call.
func New(cfg Config) *Engine {
	spc := cfg.SecondsPerCell
	if spc == 0 {
		spc = DefaultSecondsPerCell
	}
	return &Engine{secondsPerCell: spc}
}

// SecondsPerCell returns the configured cell span.
func (e *Engine) SecondsPerCell() float64 {
	return e.secondsPerCell
}

// Validate runs all three metric computations over one input pair and
// assembles the report. Either every metric computes or the whole call fails
// with an invalid-input error; partial results are never returned.
func (e *Engine) Validate(profiles []physics.Profile, verb verbal.Profile) (*report.ValidationReport, error) {
	if e.secondsPerCell <= 0 {
		return nil, core.NewInvalidInputError("seconds_per_cell", "must be positive")
	}
	if err := physics.ValidateSequence(profiles); err != nil {
		return nil, err
	}
	if err := verb.Validate(); err != nil {
		return nil, err
	}

	rIndex := e.computeRIndex(profiles, verb)
	coherence := e.computeCoherence(profiles, verb)
	directional := e.computeDirectionalAccuracy(profiles, verb.Claims)

	return &report.ValidationReport{
		ID:             core.NewReportID(),
		CreatedAt:      time.Now().UTC(),
		CellCount:      len(profiles),
		SecondsPerCell: e.secondsPerCell,
		Physics:        profiles,
		Verbalization:  verb,
		RIndex:         rIndex,
		Coherence:      coherence,
		Directional:    directional,
	}, nil
}
