// Package frame holds the in-memory tabular types shared by the loaders: the
// raw wide Frame as read from disk, the tidy LongRow produced by Melt, and the
// ordered metric code-to-name mapping.
package frame

// Metric pairs a short indicator code with its human-readable name.
type Metric struct {
	Code string
	Name string
}

// Metrics is an ordered code-to-name mapping. Order is significant: loaders
// iterate metrics in declaration order and the ranker breaks ties by catalog
// order, so a plain map would not do.
type Metrics []Metric

// Name returns the readable name for a code and whether the code is mapped.
func (m Metrics) Name(code string) (string, bool) {
	for _, e := range m {
		if e.Code == code {
			return e.Name, true
		}
	}
	return "", false
}

// Codes returns the metric codes in declaration order.
func (m Metrics) Codes() []string {
	codes := make([]string, len(m))
	for i, e := range m {
		codes[i] = e.Code
	}
	return codes
}

// Frame is a wide table as read from a delimited or XLSX file: a header row
// plus raw string cells. An empty cell is a missing value.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Col returns the index of the named column, or -1 if absent.
func (f *Frame) Col(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the raw cell at (row, column index), tolerating short rows.
func (f *Frame) Cell(row, col int) string {
	if col < 0 || col >= len(f.Rows[row]) {
		return ""
	}
	return f.Rows[row][col]
}
