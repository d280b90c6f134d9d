package engine

import (
	"math"

	"crossval/domain/core"
	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
)

// computeCoherence scores the narrative's internal plausibility: ordering and
// coverage of mentioned timestamps (semantic confidence) crossed with the F1
// of per-cell motion classification (physics validity). The composite is a
// geometric mean computed on unrounded sub-scores.
func (e *Engine) computeCoherence(profiles []physics.Profile, verb verbal.Profile) report.Coherence {
	ordering := orderingScore(verb.Mentions)
	coverage := e.coverageScore(profiles, verb.Mentions)
	semantic := (ordering + coverage) / 2

	confusion := e.classifyCells(profiles, verb.Claims)
	precision, recall, f1 := scoreConfusion(confusion)

	return report.Coherence{
		Score:              core.Round3(math.Sqrt(semantic * f1)),
		SemanticConfidence: core.Round3(semantic),
		PhysicsValidity:    core.Round3(f1),
		OrderingScore:      core.Round3(ordering),
		CoverageScore:      core.Round3(coverage),
		Precision:          core.Round3(precision),
		Recall:             core.Round3(recall),
		Confusion:          confusion,
	}
}

// orderingScore is the fraction of adjacent mention pairs that are
// non-decreasing in seconds. Zero or one mentions are vacuously ordered.
func orderingScore(mentions []verbal.Mention) float64 {
	n := len(mentions)
	if n <= 1 {
		return 1.0
	}
	violations := 0
	for i := 1; i < n; i++ {
		if mentions[i].Seconds < mentions[i-1].Seconds {
			violations++
		}
	}
	return 1.0 - float64(violations)/float64(n-1)
}

// coverageScore is the fraction of mentions lying within one cell span of
// some cell's start timestamp, i.e. plausibly referring to a real cell.
// Zero mentions leave nothing to penalize.
func (e *Engine) coverageScore(profiles []physics.Profile, mentions []verbal.Mention) float64 {
	if len(mentions) == 0 {
		return 1.0
	}
	covered := 0
	for _, m := range mentions {
		for _, p := range profiles {
			if math.Abs(m.Seconds-p.Timestamp) <= e.secondsPerCell {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(mentions))
}

// classifyCells builds the per-cell confusion matrix for "does this cell
// contain motion". A cell is claimed when at least one motion-asserting
// claim falls inside its span.
func (e *Engine) classifyCells(profiles []physics.Profile, claims []verbal.MotionClaim) report.Confusion {
	var c report.Confusion
	for _, p := range profiles {
		claimed := false
		for _, claim := range claims {
			if claim.ClaimsMotion && p.ContainsClaim(claim.Timestamp, e.secondsPerCell) {
				claimed = true
				break
			}
		}
		switch {
		case p.HasMotion && claimed:
			c.TP++
		case p.HasMotion && !claimed:
			c.FN++
		case !p.HasMotion && claimed:
			c.FP++
		default:
			c.TN++
		}
	}
	return c
}

// scoreConfusion derives precision, recall and F1. Empty denominators
// default to 1.0: no opportunity to be wrong means no penalty.
func scoreConfusion(c report.Confusion) (precision, recall, f1 float64) {
	precision = 1.0
	if c.TP+c.FP > 0 {
		precision = float64(c.TP) / float64(c.TP+c.FP)
	}
	recall = 1.0
	if c.TP+c.FN > 0 {
		recall = float64(c.TP) / float64(c.TP+c.FN)
	}
	f1 = 1.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}
