package worldbank

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// DataOptions narrows a Data query.
type DataOptions struct {
	Countries []string   // ISO2 codes; empty means the provider's "all" sentinel
	Dates     *DateRange // nil requests the provider's full default range
}

// Data retrieves annual observations for one indicator across the requested
// countries, following pagination.
func (c *Client) Data(ctx context.Context, code string, opts DataOptions) ([]Observation, error) {
	countries := "all"
	if len(opts.Countries) > 0 {
		countries = strings.Join(opts.Countries, ";")
	}
	path := fmt.Sprintf("/v2/country/%s/indicator/%s", url.PathEscape(countries), url.PathEscape(code))

	var out []Observation
	for page := 1; ; page++ {
		params := url.Values{"frequency": {"Y"}}
		if opts.Dates != nil {
			params.Set("date", opts.Dates.String())
		}

		data, err := c.get(ctx, path, params, page)
		if err != nil {
			return nil, err
		}

		var rows []Observation
		meta, err := decodeEnvelope(data, &rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)

		if page >= meta.Pages {
			break
		}
	}
	return out, nil
}

// Dataframe is a (country, date)-indexed pivot of several indicators' data.
// Columns holds the names of the indicators that actually returned data, in
// the order they were requested.
type Dataframe struct {
	Columns []string
	Rows    []DataframeRow
}

// DataframeRow is one (country, date) cell group, with one value per
// indicator name. Indicators without a value for the cell are absent from
// the map.
type DataframeRow struct {
	Country string
	Date    string
	Values  map[string]*float64
}

// Dataframe fetches each indicator in turn and pivots the observations into
// one row per (country, date), sorted by country then date. An indicator
// returning zero observations is dropped from Columns, not an error.
func (c *Client) Dataframe(ctx context.Context, indicators []Indicator, opts DataOptions) (*Dataframe, error) {
	type cellKey struct{ country, date string }

	cells := make(map[cellKey]*DataframeRow)
	var order []cellKey
	var columns []string

	for _, ind := range indicators {
		obs, err := c.Data(ctx, ind.ID, opts)
		if err != nil {
			return nil, err
		}
		if len(obs) == 0 {
			continue
		}
		columns = append(columns, ind.Name)

		for _, o := range obs {
			key := cellKey{country: o.Country.Value, date: o.Date}
			row, ok := cells[key]
			if !ok {
				row = &DataframeRow{
					Country: o.Country.Value,
					Date:    o.Date,
					Values:  make(map[string]*float64),
				}
				cells[key] = row
				order = append(order, key)
			}
			row.Values[ind.Name] = o.Value
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].country != order[j].country {
			return order[i].country < order[j].country
		}
		return order[i].date < order[j].date
	})

	df := &Dataframe{Columns: columns, Rows: make([]DataframeRow, 0, len(order))}
	for _, key := range order {
		df.Rows = append(df.Rows, *cells[key])
	}
	return df, nil
}
