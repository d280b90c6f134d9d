package ports

import (
	"crossval/domain/report"
)

// ReportWriterPort exports a validation report to a workbook on disk.
type ReportWriterPort interface {
	WriteReport(path string, rep *report.ValidationReport) error
}
