// Package loader reads indicator data from HDR composite-index files, EPI
// indicator folders, and the World Bank API, and reshapes it into filtered
// long-format tables.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/indicator-cli/internal/fetcher"
	"github.com/sells-group/indicator-cli/internal/frame"
)

// HDIOptions filters the loaded rows.
type HDIOptions struct {
	Countries []string // case-insensitive exact match; empty keeps all
	StartYear *int     // nil leaves the lower bound open
	EndYear   *int     // nil leaves the upper bound open
}

// HDI reads a composite-index file (CSV, or XLSX by extension), normalizes
// the headers, reshapes the metric_year columns to long form, and applies
// the country and year filters. HDR CSV exports carry Latin-1 country names,
// so the delimited path decodes ISO 8859-1.
func HDI(path string, metrics frame.Metrics, opts HDIOptions) ([]frame.LongRow, error) {
	f, err := readHDIFrame(path)
	if err != nil {
		return nil, err
	}
	frame.NormalizeColumns(f)

	rows, err := frame.Melt(f, frame.Schema{
		IDColumns: []string{"iso3", "country", "region"},
		Metrics:   metrics,
		Joiner:    "_",
		YearSep:   "_",
	})
	if err != nil {
		return nil, eris.Wrap(err, "hdi: reshape")
	}

	rows = frame.FilterCountry(rows, "country", opts.Countries)
	rows = frame.FilterYears(rows, opts.StartYear, opts.EndYear)
	return rows, nil
}

func readHDIFrame(path string) (*frame.Frame, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fetcher.ReadXLSXTable(path, fetcher.XLSXOptions{})
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "hdi: open %s", path)
	}
	defer file.Close() //nolint:errcheck

	f, err := fetcher.ReadTable(file, fetcher.TableOptions{Encoding: fetcher.EncodingLatin1})
	if err != nil {
		return nil, eris.Wrapf(err, "hdi: read %s", path)
	}
	return f, nil
}
