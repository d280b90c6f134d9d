package verbal

import (
	"math"

	"crossval/domain/core"
)

// Mention is one timestamp-like value the model's text referenced, in the
// order it appeared in the text (not necessarily chronological).
type Mention struct {
	Seconds float64 `json:"seconds"`
}

// MotionClaim is one distinct motion statement extracted from the model's
// free-text response. DirectionAngle is nil when the text gave no usable
// bearing; DirectionClaim keeps the raw phrase for audit.
type MotionClaim struct {
	Timestamp      float64  `json:"timestamp"`
	ClaimsMotion   bool     `json:"claims_motion"`
	DirectionAngle *float64 `json:"direction_angle,omitempty"` // [0, 360)
	DirectionClaim string   `json:"direction_claim,omitempty"`
}

// Validate checks a single claim against the input contract. A motion claim
// without a usable timestamp cannot be matched to any cell and is rejected.
func (c MotionClaim) Validate() error {
	if math.IsNaN(c.Timestamp) || math.IsInf(c.Timestamp, 0) || c.Timestamp < 0 {
		return core.NewInvalidInputError("motion_claim.timestamp", "must be a non-negative finite number")
	}
	if c.DirectionAngle != nil {
		a := *c.DirectionAngle
		if math.IsNaN(a) || a < 0 || a >= 360 {
			return core.NewInvalidInputError("motion_claim.direction_angle", "must be in [0, 360)")
		}
	}
	return nil
}

// Profile is the structured verbalization extracted from one model response.
type Profile struct {
	Willingness float64       `json:"willingness"` // fraction of motion moments described, [0, 1]
	Mentions    []Mention     `json:"mentioned_timestamps"`
	Claims      []MotionClaim `json:"motion_claims"`
}

// Validate checks the profile against the input contract.
func (p Profile) Validate() error {
	if math.IsNaN(p.Willingness) || p.Willingness < 0 || p.Willingness > 1 {
		return core.NewInvalidInputError("willingness", "must be in [0, 1]")
	}
	for _, m := range p.Mentions {
		if math.IsNaN(m.Seconds) || math.IsInf(m.Seconds, 0) {
			return core.NewInvalidInputError("mentioned_timestamps", "seconds must be finite")
		}
	}
	for _, c := range p.Claims {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
