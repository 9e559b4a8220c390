package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DataReader reads series written by DataWriter back into rows
type DataReader struct {
	fileType string
}

// NewDataReader creates a reader for fileType ("xlsx" or "csv")
func NewDataReader(fileType string) *DataReader {
	ft := strings.ToLower(strings.TrimPrefix(fileType, "."))
	if ft != "xlsx" {
		ft = "csv"
	}
	return &DataReader{fileType: ft}
}

// ReadData reads the series sheet into structured format
func (r *DataReader) ReadData(in io.Reader) (*ExcelData, error) {
	var rows [][]string
	switch r.fileType {
	case "xlsx":
		f, err := excelize.OpenReader(in)
		if err != nil {
			return nil, fmt.Errorf("failed to open Excel data: %w", err)
		}
		defer f.Close()
		if rows, err = f.GetRows(seriesSheet); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", seriesSheet, err)
		}
	default:
		var err error
		if rows, err = csv.NewReader(in).ReadAll(); err != nil {
			return nil, fmt.Errorf("failed to read CSV data: %w", err)
		}
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s data has no header row", r.fileType)
	}
	return processRows(rows), nil
}

// processRows converts raw string rows into ExcelData format
func processRows(rows [][]string) *ExcelData {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	data := &ExcelData{Headers: headers}
	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		data.Rows = append(data.Rows, rowData)
	}
	return data
}
