package frame

import (
	"strconv"
	"strings"
)

// LongRow is one tidy observation: entity identifiers, the metric code and
// readable name, the year, and the (possibly missing) value.
type LongRow struct {
	IDs        map[string]string
	Metric     string
	MetricName string // empty when the metric is not in the mapping
	Year       int
	Value      *float64
}

// Melt unpivots a wide frame into long form: one row per (entity row, value
// column). Missing cells pass through as nil values, never zero, so the
// output always has exactly len(f.Rows) x len(value columns) rows.
func Melt(f *Frame, s Schema) ([]LongRow, error) {
	type split struct {
		col    int
		metric string
		name   string
		year   int
	}

	valueCols := s.ValueColumns(f)
	splits := make([]split, 0, len(valueCols))
	for _, c := range valueCols {
		metric, year, err := s.SplitMetricYear(c)
		if err != nil {
			return nil, err
		}
		// An unmapped metric keeps an empty name; filtering downstream
		// must still work, so this is not an error.
		name, _ := s.Metrics.Name(metric)
		splits = append(splits, split{col: f.Col(c), metric: metric, name: name, year: year})
	}

	idCols := make([]int, len(s.IDColumns))
	for i, c := range s.IDColumns {
		idCols[i] = f.Col(c)
	}

	out := make([]LongRow, 0, len(f.Rows)*len(splits))
	for ri := range f.Rows {
		ids := make(map[string]string, len(s.IDColumns))
		for i, c := range s.IDColumns {
			ids[c] = f.Cell(ri, idCols[i])
		}
		for _, sp := range splits {
			out = append(out, LongRow{
				IDs:        ids,
				Metric:     sp.metric,
				MetricName: sp.name,
				Year:       sp.year,
				Value:      parseValue(f.Cell(ri, sp.col)),
			})
		}
	}
	return out, nil
}

// parseValue converts a raw cell to a float. Empty and non-numeric cells are
// missing, not zero.
func parseValue(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}
