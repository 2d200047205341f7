package frame

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Schema describes how a wide frame decomposes into id columns and
// metric-year value columns. The column naming convention is fixed per
// source: HDI files use "edu_2010" (Joiner and YearSep both "_"), EPI files
// use "bca.ind.1990" (Joiner ".ind.", YearSep ".").
type Schema struct {
	IDColumns []string // entity identifier columns, in output order
	Metrics   Metrics  // metric code to readable name
	Joiner    string   // text between a metric code and the year
	YearSep   string   // separator whose last occurrence precedes the year
}

// ValueColumns partitions the frame's columns: a column is a value column iff
// its name begins with code+Joiner for one of the schema's metric codes.
// Results keep the frame's column order.
func (s Schema) ValueColumns(f *Frame) []string {
	var cols []string
	for _, c := range f.Columns {
		for _, m := range s.Metrics {
			if strings.HasPrefix(c, m.Code+s.Joiner) {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

// SplitMetricYear splits a value column name on the last occurrence of
// YearSep into the metric text and the parsed year. A year that does not
// parse as an integer is a schema error, not a data error.
func (s Schema) SplitMetricYear(col string) (string, int, error) {
	i := strings.LastIndex(col, s.YearSep)
	if i < 0 {
		return "", 0, eris.Errorf("frame: column %q has no %q separator", col, s.YearSep)
	}
	year, err := strconv.Atoi(col[i+len(s.YearSep):])
	if err != nil {
		return "", 0, eris.Wrapf(err, "frame: column %q: parse year", col)
	}
	return col[:i], year, nil
}
