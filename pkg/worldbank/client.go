// Package worldbank is a client for the World Bank Indicators API (v2).
// Responses arrive as a two-element JSON array: page metadata followed by the
// rows; the client follows pagination and flattens the pages.
package worldbank

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.worldbank.org"

// Downloader is the transport used by the client. It is satisfied by
// fetcher.HTTPFetcher, which adds rate limiting and retries.
type Downloader interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Options configures the client.
type Options struct {
	BaseURL string // default DefaultBaseURL
	PerPage int    // page size for catalog and data requests, default 1000
}

// Client calls the World Bank API.
type Client struct {
	fetcher Downloader
	baseURL string
	perPage int
}

// New creates a client using the given transport.
func New(f Downloader, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.PerPage == 0 {
		opts.PerPage = 1000
	}
	return &Client{fetcher: f, baseURL: opts.BaseURL, perPage: opts.PerPage}
}

// pageMeta is the first element of every API response.
type pageMeta struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// get performs one API request and returns the raw body.
func (c *Client) get(ctx context.Context, path string, params url.Values, page int) ([]byte, error) {
	params.Set("format", "json")
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("page", strconv.Itoa(page))

	body, err := c.fetcher.Download(ctx, c.baseURL+path+"?"+params.Encode())
	if err != nil {
		return nil, eris.Wrapf(err, "worldbank: get %s", path)
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, eris.Wrapf(err, "worldbank: read %s", path)
	}
	return data, nil
}

// decodeEnvelope splits the [meta, rows] response array. The rows element is
// null when the query matched nothing; that decodes to an empty result.
func decodeEnvelope(data []byte, rows any) (pageMeta, error) {
	var envelope []json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return pageMeta{}, eris.Wrap(err, "worldbank: decode envelope")
	}
	if len(envelope) < 2 {
		// Single-element arrays carry an API error message.
		return pageMeta{}, eris.Errorf("worldbank: unexpected response shape (%d elements)", len(envelope))
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return pageMeta{}, eris.Wrap(err, "worldbank: decode page metadata")
	}

	if string(envelope[1]) == "null" {
		return meta, nil
	}
	if err := json.Unmarshal(envelope[1], rows); err != nil {
		return meta, eris.Wrap(err, "worldbank: decode rows")
	}
	return meta, nil
}
