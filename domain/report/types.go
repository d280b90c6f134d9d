package report

import (
	"time"

	"crossval/domain/core"
	"crossval/domain/physics"
	"crossval/domain/verbal"
)

// Direction classifies the gap between measured physics and the model's
// self-reported willingness.
type Direction string

const (
	DirectionAligned         Direction = "aligned"           // |P - V| < 0.01
	DirectionSuppression     Direction = "suppression"       // model under-reports motion
	DirectionHallucination   Direction = "hallucination"     // model over-reports motion
	DirectionNoMotion        Direction = "no_motion"         // no motion cells at all
	DirectionNearZeroPhysics Direction = "near_zero_physics" // motion cells exist but P < 0.001
)

// RIndex is the normalized suppression/hallucination gap. PhysicsMean and
// Willingness are reported rounded to 3 decimals for audit; the direction
// decision is made on unrounded values.
type RIndex struct {
	Value       float64   `json:"r_index"` // [0, 1], 3 decimals
	Direction   Direction `json:"direction"`
	PhysicsMean float64   `json:"physics_mean"` // P
	Willingness float64   `json:"willingness"`  // V
}

// Confusion holds per-cell binary classification counts for "does this cell
// contain motion". Counts always sum to the number of physics cells.
type Confusion struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

// Total returns the number of classified cells.
func (c Confusion) Total() int {
	return c.TP + c.FP + c.TN + c.FN
}

// Coherence is the composite plausibility result. Score is the geometric
// mean of SemanticConfidence and PhysicsValidity, so a near-zero axis drags
// the composite toward zero rather than averaging out.
type Coherence struct {
	Score              float64   `json:"coherence"`
	SemanticConfidence float64   `json:"semantic_confidence"`
	PhysicsValidity    float64   `json:"physics_validity"` // F1
	OrderingScore      float64   `json:"ordering_score"`
	CoverageScore      float64   `json:"coverage_score"`
	Precision          float64   `json:"precision"`
	Recall             float64   `json:"recall"`
	Confusion          Confusion `json:"confusion"`
}

// AngleComparison records one matched cell in the directional accuracy
// computation. Error carries the 180-degree wraparound, 1 decimal.
type AngleComparison struct {
	CellIndex      int     `json:"cell_index"`
	CellTimestamp  float64 `json:"cell_timestamp"`
	ClaimTimestamp float64 `json:"claim_timestamp"`
	PhysicsAngle   float64 `json:"physics_angle"`
	ClaimedAngle   float64 `json:"claimed_angle"`
	Error          float64 `json:"error"` // degrees, [0, 180], 1 decimal
}

// DirectionalAccuracy aggregates per-cell angular errors. MeanError is nil
// when no cell could be matched; an unmatched cell is unmeasurable, not a
// mismatch.
type DirectionalAccuracy struct {
	MeanError   *float64          `json:"mean_error"` // degrees, 1 decimal
	Count       int               `json:"count"`
	Comparisons []AngleComparison `json:"comparisons"`
}

// ValidationReport is the immutable output of one validation run. Both input
// profiles pass through unchanged for audit.
type ValidationReport struct {
	ID             core.ReportID       `json:"id"`
	CreatedAt      time.Time           `json:"created_at"`
	CellCount      int                 `json:"cell_count"`
	SecondsPerCell float64             `json:"seconds_per_cell"`
	Physics        []physics.Profile   `json:"physics_profiles"`
	Verbalization  verbal.Profile      `json:"verbalization_profile"`
	RIndex         RIndex              `json:"r_index_result"`
	Coherence      Coherence           `json:"coherence_result"`
	Directional    DirectionalAccuracy `json:"directional_accuracy_result"`
}
