package frame

import "strings"

// NormalizeColumns rewrites every column name in place: surrounding whitespace
// trimmed, lowercased, interior spaces replaced with underscores. Source files
// are inconsistent about header casing and padding; everything downstream
// assumes the normalized form.
func NormalizeColumns(f *Frame) {
	for i, c := range f.Columns {
		c = strings.TrimSpace(c)
		c = strings.ToLower(c)
		c = strings.ReplaceAll(c, " ", "_")
		f.Columns[i] = c
	}
}
