package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"crossval/domain/core"
	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
)

const (
	// nearZeroPhysics guards the ratio against blow-up when motion cells
	// exist but carry negligible measured intensity.
	nearZeroPhysics = 0.001

	// alignedBand is the |P - V| width treated as agreement. It takes
	// priority over the sign comparison.
	alignedBand = 0.01
)

// computeRIndex computes the normalized gap between mean physics intensity
// over motion cells (P) and the model's reported willingness (V).
func (e *Engine) computeRIndex(profiles []physics.Profile, verb verbal.Profile) report.RIndex {
	motion := physics.MotionCells(profiles)
	if len(motion) == 0 {
		// No motion anywhere: trivially aligned.
		return report.RIndex{
			Value:       0,
			Direction:   report.DirectionNoMotion,
			PhysicsMean: 0,
			Willingness: 0,
		}
	}

	intensities := make([]float64, len(motion))
	for i, p := range motion {
		intensities[i] = p.Intensity
	}
	pMean, _ := stats.Mean(intensities)
	v := verb.Willingness

	if pMean < nearZeroPhysics {
		return report.RIndex{
			Value:       0,
			Direction:   report.DirectionNearZeroPhysics,
			PhysicsMean: core.Round3(pMean),
			Willingness: core.Round3(v),
		}
	}

	gap := math.Abs(pMean - v)
	value := core.Round3(core.Clamp01(gap / pMean))

	// Direction is decided on unrounded values.
	direction := report.DirectionAligned
	if gap >= alignedBand {
		if v < pMean {
			direction = report.DirectionSuppression
		} else {
			direction = report.DirectionHallucination
		}
	}

	return report.RIndex{
		Value:       value,
		Direction:   direction,
		PhysicsMean: core.Round3(pMean),
		Willingness: core.Round3(v),
	}
}
