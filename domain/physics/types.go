package physics

import (
	"math"

	"crossval/domain/core"
)

// MinFringeMagnitude is the threshold below which a measured motion vector
// carries no reliable direction and is excluded from angular comparison.
const MinFringeMagnitude = 0.01

// Fringe is the measured motion vector of a single timeline cell.
type Fringe struct {
	Magnitude float64 `json:"magnitude"` // [0, 1]
	AngleDeg  float64 `json:"angle_deg"` // [0, 360)
}

// HasDirection reports whether the vector is strong enough to compare against
// a claimed direction.
func (f Fringe) HasDirection() bool {
	return f.Magnitude >= MinFringeMagnitude
}

// Profile is one timeline cell as measured by the external pixel/audio
// analyzer. The cell covers [Timestamp, Timestamp + secondsPerCell).
// The engine never mutates profiles.
type Profile struct {
	CellIndex int     `json:"cell_index"`
	Timestamp float64 `json:"timestamp"` // seconds from start of timeline
	HasMotion bool    `json:"has_motion"`
	Intensity float64 `json:"physics_intensity"` // meaningful only when HasMotion
	Fringe    Fringe  `json:"directional_fringe"`
}

// ContainsClaim reports whether a claim timestamp falls inside this cell's
// span for the given cell width.
func (p Profile) ContainsClaim(seconds, secondsPerCell float64) bool {
	return seconds >= p.Timestamp && seconds < p.Timestamp+secondsPerCell
}

// Validate checks a single profile against the input contract.
func (p Profile) Validate() error {
	if p.CellIndex < 0 {
		return core.NewInvalidInputError("cell_index", "must be non-negative")
	}
	if math.IsNaN(p.Timestamp) || math.IsInf(p.Timestamp, 0) || p.Timestamp < 0 {
		return core.NewInvalidInputError("timestamp", "must be a non-negative finite number")
	}
	if math.IsNaN(p.Intensity) || p.Intensity < 0 || p.Intensity > 1 {
		return core.NewInvalidInputError("physics_intensity", "must be in [0, 1]")
	}
	if math.IsNaN(p.Fringe.Magnitude) || p.Fringe.Magnitude < 0 || p.Fringe.Magnitude > 1 {
		return core.NewInvalidInputError("directional_fringe.magnitude", "must be in [0, 1]")
	}
	if math.IsNaN(p.Fringe.AngleDeg) || p.Fringe.AngleDeg < 0 || p.Fringe.AngleDeg >= 360 {
		return core.NewInvalidInputError("directional_fringe.angle_deg", "must be in [0, 360)")
	}
	return nil
}

// ValidateSequence checks the full per-cell sequence: non-empty, per-cell
// ranges, and strictly increasing cell indexes and timestamps.
func ValidateSequence(profiles []Profile) error {
	if len(profiles) == 0 {
		return core.NewInvalidInputError("physics_profiles", "sequence must not be empty")
	}
	for i, p := range profiles {
		if err := p.Validate(); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		if p.CellIndex <= profiles[i-1].CellIndex {
			return core.NewInvalidInputError("cell_index", "must be strictly increasing")
		}
		if p.Timestamp <= profiles[i-1].Timestamp {
			return core.NewInvalidInputError("timestamp", "must be strictly increasing")
		}
	}
	return nil
}

// MotionCells returns the subset of cells with measured motion, preserving order.
func MotionCells(profiles []Profile) []Profile {
	var out []Profile
	for _, p := range profiles {
		if p.HasMotion {
			out = append(out, p)
		}
	}
	return out
}
