package worldbank

import (
	"context"
	"fmt"
	"net/url"
)

// Indicators retrieves the full indicator catalog for a source, following
// pagination. The returned slice preserves the API's catalog order.
func (c *Client) Indicators(ctx context.Context, source int) ([]Indicator, error) {
	path := fmt.Sprintf("/v2/source/%d/indicator", source)

	var out []Indicator
	for page := 1; ; page++ {
		data, err := c.get(ctx, path, url.Values{}, page)
		if err != nil {
			return nil, err
		}

		var rows []Indicator
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
