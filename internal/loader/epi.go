package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/indicator-cli/internal/fetcher"
	"github.com/sells-group/indicator-cli/internal/frame"
)

// EPIOptions filters the loaded rows. Unlike the HDI loader, both year bounds
// are mandatory: the year filter is always applied to the concatenated table.
type EPIOptions struct {
	Countries []string // case-insensitive exact match; empty keeps all
	StartYear int
	EndYear   int
}

// EPIRow is one long-format environmental indicator observation.
type EPIRow struct {
	ISO          string
	Country      string
	Variable     string // metric abbreviation as given, e.g. "BCA"
	VariableName string
	Year         int
	Value        *float64
}

// EPI loads one file per metric from the folder, expecting {CODE}_ind_na.csv
// with value columns named {code-lower}.ind.{year}. A missing file is fatal:
// no partial result is returned. Per-metric tables are concatenated in the
// mapping's declaration order, then filtered.
func EPI(folder string, metrics frame.Metrics, opts EPIOptions) ([]EPIRow, error) {
	var all []EPIRow

	for _, m := range metrics {
		path := filepath.Join(folder, m.Code+"_ind_na.csv")
		rows, err := loadEPIFile(path, m)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}

	all = filterEPICountry(all, opts.Countries)

	out := make([]EPIRow, 0, len(all))
	for _, r := range all {
		if r.Year >= opts.StartYear && r.Year <= opts.EndYear {
			out = append(out, r)
		}
	}
	return out, nil
}

func loadEPIFile(path string, m frame.Metric) ([]EPIRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "epi: file %s not found", path)
	}
	defer file.Close() //nolint:errcheck

	f, err := fetcher.ReadTable(file, fetcher.TableOptions{})
	if err != nil {
		return nil, eris.Wrapf(err, "epi: read %s", path)
	}
	frame.NormalizeColumns(f)

	long, err := frame.Melt(f, frame.Schema{
		IDColumns: []string{"iso", "country"},
		Metrics:   frame.Metrics{{Code: strings.ToLower(m.Code), Name: m.Name}},
		Joiner:    ".ind.",
		YearSep:   ".",
	})
	if err != nil {
		return nil, eris.Wrapf(err, "epi: reshape %s", m.Code)
	}

	rows := make([]EPIRow, 0, len(long))
	for _, r := range long {
		rows = append(rows, EPIRow{
			ISO:          r.IDs["iso"],
			Country:      r.IDs["country"],
			Variable:     m.Code,
			VariableName: m.Name,
			Year:         r.Year,
			Value:        r.Value,
		})
	}
	return rows, nil
}

func filterEPICountry(rows []EPIRow, countries []string) []EPIRow {
	if len(countries) == 0 {
		return rows
	}
	allowed := make(map[string]bool, len(countries))
	for _, c := range countries {
		allowed[strings.ToLower(c)] = true
	}
	out := make([]EPIRow, 0, len(rows))
	for _, r := range rows {
		if allowed[strings.ToLower(r.Country)] {
			out = append(out, r)
		}
	}
	return out
}
