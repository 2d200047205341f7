package loader

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/indicator-cli/internal/frame"
	"github.com/sells-group/indicator-cli/pkg/worldbank"
)

// WorldBankOptions narrows the fetched data.
type WorldBankOptions struct {
	Countries []string // ISO2 codes; empty requests the provider's "all" sentinel
	StartYear *int
	EndYear   *int
}

// Table is the World Bank loader's output: Country and Year first, then one
// column per indicator name in declared order.
type Table struct {
	Columns []string
	Rows    []TableRow
}

// TableRow is one (country, year) row; Values aligns with Columns[2:].
type TableRow struct {
	Country string
	Year    int
	Values  []*float64
}

// dataframeClient is the slice of the API client the loader needs.
type dataframeClient interface {
	Dataframe(ctx context.Context, indicators []worldbank.Indicator, opts worldbank.DataOptions) (*worldbank.Dataframe, error)
}

// WorldBank fetches annual data for the given indicators and flattens the
// (country, date) index into Country and Year columns. The date range is only
// restricted when both bounds are set; otherwise the provider's full default
// range is requested. Indicators absent from the returned data are silently
// omitted from the column list.
func WorldBank(ctx context.Context, client dataframeClient, metrics frame.Metrics, opts WorldBankOptions) (*Table, error) {
	var dates *worldbank.DateRange
	if opts.StartYear != nil && opts.EndYear != nil {
		dates = &worldbank.DateRange{Start: *opts.StartYear, End: *opts.EndYear}
	}

	indicators := make([]worldbank.Indicator, len(metrics))
	for i, m := range metrics {
		indicators[i] = worldbank.Indicator{ID: m.Code, Name: m.Name}
	}

	df, err := client.Dataframe(ctx, indicators, worldbank.DataOptions{
		Countries: opts.Countries,
		Dates:     dates,
	})
	if err != nil {
		return nil, eris.Wrap(err, "worldbank: fetch dataframe")
	}

	present := make(map[string]bool, len(df.Columns))
	for _, c := range df.Columns {
		present[c] = true
	}
	var names []string
	for _, m := range metrics {
		if present[m.Name] {
			names = append(names, m.Name)
		}
	}

	table := &Table{Columns: append([]string{"Country", "Year"}, names...)}
	for _, row := range df.Rows {
		year, err := yearOf(row.Date)
		if err != nil {
			return nil, err
		}
		values := make([]*float64, len(names))
		for i, name := range names {
			values[i] = row.Values[name]
		}
		table.Rows = append(table.Rows, TableRow{Country: row.Country, Year: year, Values: values})
	}
	return table, nil
}

// yearOf truncates a date-like value ("2019", "2019-01-01", "2019M01") to its
// calendar year.
func yearOf(date string) (int, error) {
	s := date
	if len(s) > 4 {
		s = s[:4]
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, eris.Wrapf(err, "worldbank: parse year from %q", date)
	}
	return year, nil
}
