package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	seriesSheet  = "Series"
	summarySheet = "Summary"
)

// DataWriter writes series tables as Excel workbooks or CSV files
type DataWriter struct {
	fileType string // "xlsx" or "csv"
}

// NewDataWriter creates a writer for fileType
func NewDataWriter(fileType string) (*DataWriter, error) {
	ft := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(fileType), "."))
	switch ft {
	case "", "csv":
		return &DataWriter{fileType: "csv"}, nil
	case "xlsx":
		return &DataWriter{fileType: "xlsx"}, nil
	}
	return nil, fmt.Errorf("unsupported file type: %s", fileType)
}

// Extension is the file extension without the dot
func (w *DataWriter) Extension() string { return w.fileType }

// ContentType is the MIME type of the written data
func (w *DataWriter) ContentType() string {
	if w.fileType == "xlsx" {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write encodes t to out
func (w *DataWriter) Write(out io.Writer, t *SeriesTable) error {
	switch w.fileType {
	case "xlsx":
		return w.writeExcel(out, t)
	default:
		return w.writeCSV(out, t)
	}
}

// writeExcel puts the points on a Series sheet and the caption and moments on
// a Summary sheet
func (w *DataWriter) writeExcel(out io.Writer, t *SeriesTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", seriesSheet); err != nil {
		return fmt.Errorf("failed to name series sheet: %w", err)
	}
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(seriesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(seriesSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(seriesSheet, "A", "B", 16); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Distribution", t.Kind},
		{"Caption", t.Caption},
		{"Parameters", t.Legend},
		{"Mean", t.Mean},
		{"Variance", t.Variance},
		{"Points", t.Summary.Points},
		{"Sampled mass", t.Summary.Mass},
		{"Sampled mean", t.Summary.Mean},
		{"Peak", t.Summary.MaxY},
		{"Poles", t.Summary.Poles},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 60); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *DataWriter) writeCSV(out io.Writer, t *SeriesTable) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for j, v := range row {
			record[j] = cellText(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
