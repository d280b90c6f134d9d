package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"crossval/domain/report"
)

// ReportSummarizer renders a validation report as a markdown digest for the
// report API and logs.
type ReportSummarizer struct{}

// NewReportSummarizer creates a summarizer.
func NewReportSummarizer() *ReportSummarizer {
	return &ReportSummarizer{}
}

// Summarize produces the markdown digest of one report.
func (s *ReportSummarizer) Summarize(rep *report.ValidationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Validation Report %s\n\n", rep.ID)
	fmt.Fprintf(&b, "%s\n\n", verdictLine(rep))

	fmt.Fprintf(&b, "## Metrics\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Cells | %d (%.0fs each) |\n", rep.CellCount, rep.SecondsPerCell)
	fmt.Fprintf(&b, "| R-index | %.3f (%s) |\n", rep.RIndex.Value, rep.RIndex.Direction)
	fmt.Fprintf(&b, "| Physics mean (P) | %.3f |\n", rep.RIndex.PhysicsMean)
	fmt.Fprintf(&b, "| Willingness (V) | %.3f |\n", rep.RIndex.Willingness)
	fmt.Fprintf(&b, "| Coherence | %.3f |\n", rep.Coherence.Score)
	fmt.Fprintf(&b, "| Semantic confidence | %.3f (ordering %.3f, coverage %.3f) |\n",
		rep.Coherence.SemanticConfidence, rep.Coherence.OrderingScore, rep.Coherence.CoverageScore)
	fmt.Fprintf(&b, "| Physics validity (F1) | %.3f (precision %.3f, recall %.3f) |\n",
		rep.Coherence.PhysicsValidity, rep.Coherence.Precision, rep.Coherence.Recall)

	c := rep.Coherence.Confusion
	fmt.Fprintf(&b, "| Confusion | TP %d / FP %d / TN %d / FN %d |\n", c.TP, c.FP, c.TN, c.FN)

	if rep.Directional.MeanError != nil {
		fmt.Fprintf(&b, "| Mean angular error | %.1f deg over %d cells |\n",
			*rep.Directional.MeanError, rep.Directional.Count)
	} else {
		fmt.Fprintf(&b, "| Mean angular error | n/a (no measurable cells) |\n")
	}

	if worst := worstComparisons(rep.Directional.Comparisons, 3); len(worst) > 0 {
		fmt.Fprintf(&b, "\n## Largest angular errors\n\n")
		for _, cmp := range worst {
			fmt.Fprintf(&b, "- cell %d at %.0fs: measured %.0f deg, claimed %.0f deg, error %.1f deg\n",
				cmp.CellIndex, cmp.CellTimestamp, cmp.PhysicsAngle, cmp.ClaimedAngle, cmp.Error)
		}
	}

	return b.String()
}

// verdictLine condenses the run into one human-readable sentence.
func verdictLine(rep *report.ValidationReport) string {
	switch rep.RIndex.Direction {
	case report.DirectionNoMotion:
		return "No motion detected anywhere; physics and narration are trivially aligned."
	case report.DirectionNearZeroPhysics:
		return "Motion cells carry negligible measured intensity; the gap ratio is undefined and reported as zero."
	case report.DirectionSuppression:
		return fmt.Sprintf("The model under-reports motion (suppression, R-index %.3f).", rep.RIndex.Value)
	case report.DirectionHallucination:
		return fmt.Sprintf("The model over-reports motion (hallucination, R-index %.3f).", rep.RIndex.Value)
	default:
		return fmt.Sprintf("Physics and narration agree (R-index %.3f).", rep.RIndex.Value)
	}
}

// worstComparisons returns up to n comparisons with the largest errors,
// ties broken by cell order.
func worstComparisons(comparisons []report.AngleComparison, n int) []report.AngleComparison {
	if len(comparisons) == 0 {
		return nil
	}

	sorted := make([]report.AngleComparison, len(comparisons))
	copy(sorted, comparisons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Error > sorted[j].Error
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MedianAngularError reports the median error across comparisons, for
// aggregate views over many reports.
func MedianAngularError(comparisons []report.AngleComparison) (float64, bool) {
	if len(comparisons) == 0 {
		return 0, false
	}
	errs := make([]float64, len(comparisons))
	for i, c := range comparisons {
		errs[i] = c.Error
	}
	median, err := stats.Median(errs)
	if err != nil {
		return 0, false
	}
	return median, true
}
