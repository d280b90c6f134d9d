package engine

import (
	"testing"

	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
)

func motionCell(index int, ts, intensity float64) physics.Profile {
	return physics.Profile{
		CellIndex: index,
		Timestamp: ts,
		HasMotion: true,
		Intensity: intensity,
	}
}

func stillCell(index int, ts float64) physics.Profile {
	return physics.Profile{CellIndex: index, Timestamp: ts}
}

// TestRIndex_NoMotion verifies the trivially-aligned case when no cell
// carries motion.
func TestRIndex_NoMotion(t *testing.T) {
	e := New(Config{})
	profiles := []physics.Profile{stillCell(0, 0), stillCell(1, 15), stillCell(2, 30), stillCell(3, 45)}

	r := e.computeRIndex(profiles, verbal.Profile{Willingness: 0.7})

	if r.Direction != report.DirectionNoMotion {
		t.Errorf("Expected direction no_motion, got %s", r.Direction)
	}
	if r.Value != 0 || r.PhysicsMean != 0 || r.Willingness != 0 {
		t.Errorf("Expected all-zero r-index result, got %+v", r)
	}
}

// TestRIndex_NearZeroPhysics verifies the guard when motion cells exist but
// carry negligible intensity.
func TestRIndex_NearZeroPhysics(t *testing.T) {
	e := New(Config{})
	profiles := []physics.Profile{motionCell(0, 0, 0.0005), motionCell(1, 15, 0.0001)}

	r := e.computeRIndex(profiles, verbal.Profile{Willingness: 0.9})

	if r.Direction != report.DirectionNearZeroPhysics {
		t.Errorf("Expected direction near_zero_physics, got %s", r.Direction)
	}
	if r.Value != 0 {
		t.Errorf("Expected rIndex 0, got %f", r.Value)
	}
	if r.Willingness != 0.9 {
		t.Errorf("Expected willingness passthrough 0.9, got %f", r.Willingness)
	}
}

// TestRIndex_Suppression pins scenario B: strong physics, silent model.
func TestRIndex_Suppression(t *testing.T) {
	e := New(Config{})
	profiles := []physics.Profile{motionCell(0, 0, 0.8)}

	r := e.computeRIndex(profiles, verbal.Profile{Willingness: 0.0})

	if r.Direction != report.DirectionSuppression {
		t.Errorf("Expected direction suppression, got %s", r.Direction)
	}
	if r.Value != 1.0 {
		t.Errorf("Expected rIndex 1.0, got %f", r.Value)
	}
	if r.PhysicsMean != 0.8 || r.Willingness != 0.0 {
		t.Errorf("Expected P=0.8 V=0.0, got P=%f V=%f", r.PhysicsMean, r.Willingness)
	}
}

// TestRIndex_Hallucination verifies over-reporting classification.
func TestRIndex_Hallucination(t *testing.T) {
	e := New(Config{})
	profiles := []physics.Profile{motionCell(0, 0, 0.2), motionCell(1, 15, 0.4)}

	r := e.computeRIndex(profiles, verbal.Profile{Willingness: 0.9})

	if r.Direction != report.DirectionHallucination {
		t.Errorf("Expected direction hallucination, got %s", r.Direction)
	}
	// |0.3 - 0.9| / 0.3 = 2.0, clamped to 1.0
	if r.Value != 1.0 {
		t.Errorf("Expected clamped rIndex 1.0, got %f", r.Value)
	}
}

// TestRIndex_AlignedBand verifies the 0.01 band takes priority over the sign
// comparison on both sides.
func TestRIndex_AlignedBand(t *testing.T) {
	tests := []struct {
		name        string
		willingness float64
	}{
		{"v slightly below p", 0.495},
		{"v slightly above p", 0.505},
		{"v equal to p", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Config{})
			profiles := []physics.Profile{motionCell(0, 0, 0.5)}

			r := e.computeRIndex(profiles, verbal.Profile{Willingness: tt.willingness})
			if r.Direction != report.DirectionAligned {
				t.Errorf("Expected aligned for willingness %f, got %s", tt.willingness, r.Direction)
			}
		})
	}
}

// TestRIndex_Bounds verifies the value stays in [0,1] and the direction is
// one of the five enum values across a spread of inputs.
func TestRIndex_Bounds(t *testing.T) {
	valid := map[report.Direction]bool{
		report.DirectionAligned:         true,
		report.DirectionSuppression:     true,
		report.DirectionHallucination:   true,
		report.DirectionNoMotion:        true,
		report.DirectionNearZeroPhysics: true,
	}

	intensities := []float64{0, 0.0001, 0.001, 0.05, 0.3, 0.5, 0.99, 1.0}
	willingness := []float64{0, 0.001, 0.25, 0.5, 0.75, 1.0}

	e := New(Config{})
	for _, p := range intensities {
		for _, v := range willingness {
			profiles := []physics.Profile{motionCell(0, 0, p)}
			r := e.computeRIndex(profiles, verbal.Profile{Willingness: v})
			if r.Value < 0 || r.Value > 1 {
				t.Errorf("rIndex out of [0,1] for P=%f V=%f: %f", p, v, r.Value)
			}
			if !valid[r.Direction] {
				t.Errorf("Unexpected direction %s for P=%f V=%f", r.Direction, p, v)
			}
		}
	}
}

// TestRIndex_MixedCells verifies the mean only covers motion cells.
func TestRIndex_MixedCells(t *testing.T) {
	e := New(Config{})
	profiles := []physics.Profile{
		motionCell(0, 0, 0.6),
		stillCell(1, 15),
		motionCell(2, 30, 0.2),
		stillCell(3, 45),
	}

	r := e.computeRIndex(profiles, verbal.Profile{Willingness: 0.2})

	if r.PhysicsMean != 0.4 {
		t.Errorf("Expected P=0.4 over motion cells only, got %f", r.PhysicsMean)
	}
	// |0.4 - 0.2| / 0.4 = 0.5
	if r.Value != 0.5 {
		t.Errorf("Expected rIndex 0.5, got %f", r.Value)
	}
	if r.Direction != report.DirectionSuppression {
		t.Errorf("Expected suppression, got %s", r.Direction)
	}
}
