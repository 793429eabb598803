package exporter

import (
	"strconv"

	"enrolcli/pkg/contracts/domain"
)

// SeriesExporter writes computed enrolment series to CSV files
type SeriesExporter struct {
	csvWriter *CSVWriter
}

// NewSeriesExporter creates a new enrolment series exporter
func NewSeriesExporter() *SeriesExporter {
	return &SeriesExporter{csvWriter: NewCSVWriter()}
}

// ExportSeries writes the day-offset/count pairs of a series to outputPath.
// An empty series produces a header-only file, which keeps downstream
// spreadsheet imports working when a window excluded every event.
func (e *SeriesExporter) ExportSeries(series domain.Series, outputPath string) error {
	records := make([][]string, 0, series.Len())
	for i, day := range series.Days {
		records = append(records, []string{
			strconv.Itoa(day),
			strconv.Itoa(series.Counts[i]),
		})
	}
	return e.csvWriter.WriteSimpleCSV(outputPath, []string{"Day", "Enrolled"}, records)
}
