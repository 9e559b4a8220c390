package excel

import (
	"math"
	"strconv"

	"distviz/domain/distribution"
	"distviz/internal/sampling"
)

// SeriesTable is one sampled series laid out as a sheet
type SeriesTable struct {
	Kind     string
	Caption  string
	Legend   string
	Mean     string
	Variance string
	Headers  []string
	Rows     [][]float64
	Summary  sampling.Summary
}

// NewSeriesTable tabulates s, which must have been sampled from v
func NewSeriesTable(v distribution.Validated, s sampling.Series) *SeriesTable {
	m := v.Model()
	spec := m.Spec()
	p := v.Params()

	yHeader := "f(x)"
	if s.Discrete {
		yHeader = "P(X=x)"
	}
	t := &SeriesTable{
		Kind:     spec.Kind.String(),
		Caption:  distribution.Caption(v),
		Legend:   distribution.Legend(spec, p),
		Mean:     m.Mean(p).String(),
		Variance: m.Variance(p).String(),
		Headers:  []string{"x", yHeader},
		Rows:     make([][]float64, 0, s.Len()),
		Summary:  sampling.Summarize(s),
	}
	for _, pt := range s.Points {
		t.Rows = append(t.Rows, []float64{pt.X, pt.Y})
	}
	return t
}

// RawRowData represents a row read back from a sheet as string key-value pairs
type RawRowData map[string]string

// ExcelData represents a sheet read back from disk
type ExcelData struct {
	Headers []string
	Rows    []RawRowData
}

// cellValue maps values a spreadsheet cannot hold to text
func cellValue(v float64) interface{} {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case math.IsNaN(v):
		return "NaN"
	}
	return v
}

func cellText(v float64) string {
	if s, ok := cellValue(v).(string); ok {
		return s
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
