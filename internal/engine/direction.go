package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"crossval/domain/core"
	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
)

// computeDirectionalAccuracy compares measured motion angles against claimed
// ones, cell by cell. Only cells with motion and a reliable fringe direction
// participate; a cell with no matchable claim is unmeasurable and skipped,
// not counted as a mismatch. The first claim in input order wins when several
// fall inside the same cell window.
func (e *Engine) computeDirectionalAccuracy(profiles []physics.Profile, claims []verbal.MotionClaim) report.DirectionalAccuracy {
	var comparisons []report.AngleComparison
	var errs []float64

	for _, p := range profiles {
		if !p.HasMotion || !p.Fringe.HasDirection() {
			continue
		}
		claim, ok := e.firstDirectedClaim(p, claims)
		if !ok {
			continue
		}
		angErr := core.Round1(angularError(p.Fringe.AngleDeg, *claim.DirectionAngle))
		comparisons = append(comparisons, report.AngleComparison{
			CellIndex:      p.CellIndex,
			CellTimestamp:  p.Timestamp,
			ClaimTimestamp: claim.Timestamp,
			PhysicsAngle:   p.Fringe.AngleDeg,
			ClaimedAngle:   *claim.DirectionAngle,
			Error:          angErr,
		})
		errs = append(errs, angErr)
	}

	result := report.DirectionalAccuracy{
		Count:       len(comparisons),
		Comparisons: comparisons,
	}
	if len(errs) > 0 {
		mean, _ := stats.Mean(errs)
		mean = core.Round1(mean)
		result.MeanError = &mean
	}
	return result
}

// firstDirectedClaim finds the first claim in input order carrying a
// direction angle whose timestamp falls inside the cell's span.
func (e *Engine) firstDirectedClaim(p physics.Profile, claims []verbal.MotionClaim) (verbal.MotionClaim, bool) {
	for _, c := range claims {
		if c.DirectionAngle == nil {
			continue
		}
		if p.ContainsClaim(c.Timestamp, e.secondsPerCell) {
			return c, true
		}
	}
	return verbal.MotionClaim{}, false
}

// angularError is the absolute difference between two angles in degrees with
// 360-degree wraparound; the result is always in [0, 180].
func angularError(physAngle, claimAngle float64) float64 {
	diff := math.Abs(physAngle - claimAngle)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
