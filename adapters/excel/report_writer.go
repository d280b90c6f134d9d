// Package excel exports validation reports as xlsx workbooks.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"crossval/domain/report"
	"crossval/ports"
)

const (
	summarySheet = "Summary"
	cellsSheet   = "Cells"
	anglesSheet  = "Angles"
)

// ReportWriter writes one report per workbook: a Summary sheet with the
// headline metrics, a Cells sheet with the per-cell physics timeline, and an
// Angles sheet with the directional comparisons.
type ReportWriter struct{}

// NewReportWriter creates a workbook writer.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteReport saves the report workbook at path.
func (w *ReportWriter) WriteReport(path string, rep *report.ValidationReport) error {
	f := excelize.NewFile()

	if err := w.writeSummary(f, rep); err != nil {
		return err
	}
	if err := w.writeCells(f, rep); err != nil {
		return err
	}
	if err := w.writeAngles(f, rep); err != nil {
		return err
	}

	// Drop the default sheet and land on Summary.
	if idx, err := f.GetSheetIndex(summarySheet); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, rep *report.ValidationReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Report ID", rep.ID.String()},
		{"Created at", rep.CreatedAt.Format("2006-01-02 15:04:05 UTC")},
		{"Cells", rep.CellCount},
		{"Seconds per cell", rep.SecondsPerCell},
		{"R-index", rep.RIndex.Value},
		{"Direction", string(rep.RIndex.Direction)},
		{"Physics mean (P)", rep.RIndex.PhysicsMean},
		{"Willingness (V)", rep.RIndex.Willingness},
		{"Coherence", rep.Coherence.Score},
		{"Semantic confidence", rep.Coherence.SemanticConfidence},
		{"Ordering score", rep.Coherence.OrderingScore},
		{"Coverage score", rep.Coherence.CoverageScore},
		{"Physics validity (F1)", rep.Coherence.PhysicsValidity},
		{"Precision", rep.Coherence.Precision},
		{"Recall", rep.Coherence.Recall},
		{"True positives", rep.Coherence.Confusion.TP},
		{"False positives", rep.Coherence.Confusion.FP},
		{"True negatives", rep.Coherence.Confusion.TN},
		{"False negatives", rep.Coherence.Confusion.FN},
	}
	if rep.Directional.MeanError != nil {
		rows = append(rows, []interface{}{"Mean angular error (deg)", *rep.Directional.MeanError})
	} else {
		rows = append(rows, []interface{}{"Mean angular error (deg)", "n/a"})
	}
	rows = append(rows, []interface{}{"Measurable direction cells", rep.Directional.Count})

	return writeRows(f, summarySheet, rows)
}

func (w *ReportWriter) writeCells(f *excelize.File, rep *report.ValidationReport) error {
	if _, err := f.NewSheet(cellsSheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Cell", "Timestamp (s)", "Has motion", "Intensity", "Fringe magnitude", "Fringe angle (deg)"},
	}
	for _, p := range rep.Physics {
		rows = append(rows, []interface{}{
			p.CellIndex, p.Timestamp, p.HasMotion, p.Intensity,
			p.Fringe.Magnitude, p.Fringe.AngleDeg,
		})
	}

	return writeRows(f, cellsSheet, rows)
}

func (w *ReportWriter) writeAngles(f *excelize.File, rep *report.ValidationReport) error {
	if _, err := f.NewSheet(anglesSheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Cell", "Timestamp (s)", "Physics angle (deg)", "Claimed angle (deg)", "Error (deg)"},
	}
	for _, c := range rep.Directional.Comparisons {
		rows = append(rows, []interface{}{
			c.CellIndex, c.CellTimestamp, c.PhysicsAngle, c.ClaimedAngle, c.Error,
		})
	}

	return writeRows(f, anglesSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// Ensure ReportWriter implements ReportWriterPort
var _ ports.ReportWriterPort = (*ReportWriter)(nil)
