package app

import (
	"strings"
	"testing"
	"time"

	"crossval/domain/core"
	"crossval/domain/report"
)

func sampleReport() *report.ValidationReport {
	mean := 20.5
	return &report.ValidationReport{
		ID:             core.ReportID("r-123"),
		CreatedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		CellCount:      8,
		SecondsPerCell: 15,
		RIndex: report.RIndex{
			Value:       0.25,
			Direction:   report.DirectionSuppression,
			PhysicsMean: 0.8,
			Willingness: 0.6,
		},
		Coherence: report.Coherence{
			Score:              0.9,
			SemanticConfidence: 0.95,
			PhysicsValidity:    0.853,
			OrderingScore:      1.0,
			CoverageScore:      0.9,
			Precision:          0.9,
			Recall:             0.81,
			Confusion:          report.Confusion{TP: 4, FP: 1, TN: 2, FN: 1},
		},
		Directional: report.DirectionalAccuracy{
			MeanError: &mean,
			Count:     2,
			Comparisons: []report.AngleComparison{
				{CellIndex: 1, CellTimestamp: 15, PhysicsAngle: 10, ClaimedAngle: 40, Error: 30},
				{CellIndex: 3, CellTimestamp: 45, PhysicsAngle: 100, ClaimedAngle: 111, Error: 11},
			},
		},
	}
}

// TestSummarizeIncludesMetrics verifies the digest carries the headline numbers.
func TestSummarizeIncludesMetrics(t *testing.T) {
	md := NewReportSummarizer().Summarize(sampleReport())

	for _, want := range []string{
		"# Validation Report r-123",
		"under-reports",
		"| R-index | 0.250 (suppression) |",
		"| Coherence | 0.900 |",
		"TP 4 / FP 1 / TN 2 / FN 1",
		"20.5 deg over 2 cells",
		"## Largest angular errors",
		"cell 1 at 15s",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Digest missing %q:\n%s", want, md)
		}
	}
}

// TestSummarizeNoDirectionalData verifies the n/a path.
func TestSummarizeNoDirectionalData(t *testing.T) {
	rep := sampleReport()
	rep.Directional = report.DirectionalAccuracy{}

	md := NewReportSummarizer().Summarize(rep)
	if !strings.Contains(md, "n/a (no measurable cells)") {
		t.Errorf("Expected n/a angular error line:\n%s", md)
	}
	if strings.Contains(md, "## Largest angular errors") {
		t.Errorf("Unexpected angular error section without comparisons:\n%s", md)
	}
}

// TestWorstComparisonsOrdering verifies sorting and truncation.
func TestWorstComparisonsOrdering(t *testing.T) {
	comparisons := []report.AngleComparison{
		{CellIndex: 0, Error: 5},
		{CellIndex: 1, Error: 50},
		{CellIndex: 2, Error: 20},
		{CellIndex: 3, Error: 35},
	}

	worst := worstComparisons(comparisons, 3)
	if len(worst) != 3 {
		t.Fatalf("Expected 3 comparisons, got %d", len(worst))
	}
	if worst[0].CellIndex != 1 || worst[1].CellIndex != 3 || worst[2].CellIndex != 2 {
		t.Errorf("Wrong ordering: %+v", worst)
	}
}

// TestMedianAngularError verifies the aggregate helper.
func TestMedianAngularError(t *testing.T) {
	median, ok := MedianAngularError([]report.AngleComparison{
		{Error: 10}, {Error: 30}, {Error: 20},
	})
	if !ok {
		t.Fatal("Expected a median for non-empty comparisons")
	}
	if median != 20 {
		t.Errorf("Expected median 20, got %f", median)
	}

	if _, ok := MedianAngularError(nil); ok {
		t.Error("Expected no median for empty comparisons")
	}
}
