package frame

import "strings"

// FilterCountry keeps rows whose value in the given id column matches one of
// the countries, compared case-insensitively. A nil or empty filter keeps
// every row.
func FilterCountry(rows []LongRow, idColumn string, countries []string) []LongRow {
	if len(countries) == 0 {
		return rows
	}
	allowed := make(map[string]bool, len(countries))
	for _, c := range countries {
		allowed[strings.ToLower(c)] = true
	}
	out := make([]LongRow, 0, len(rows))
	for _, r := range rows {
		if allowed[strings.ToLower(r.IDs[idColumn])] {
			out = append(out, r)
		}
	}
	return out
}

// FilterYears keeps rows with start <= year <= end, bounds inclusive. A nil
// bound is not applied.
func FilterYears(rows []LongRow, start, end *int) []LongRow {
	if start == nil && end == nil {
		return rows
	}
	out := make([]LongRow, 0, len(rows))
	for _, r := range rows {
		if start != nil && r.Year < *start {
			continue
		}
		if end != nil && r.Year > *end {
			continue
		}
		out = append(out, r)
	}
	return out
}
