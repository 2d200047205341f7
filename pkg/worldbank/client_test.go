package worldbank

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainDownloader is a bare transport for tests; production wiring uses the
// rate-limited fetcher instead.
type plainDownloader struct{}

func (plainDownloader) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func newTestClient(srv *httptest.Server) *Client {
	return New(plainDownloader{}, Options{BaseURL: srv.URL, PerPage: 2})
}

func TestIndicators_FollowsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/source/80/indicator", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `[{"page":1,"pages":2,"total":3},[{"id":"A","name":"Alpha"},{"id":"B","name":"Beta"}]]`)
		case "2":
			fmt.Fprint(w, `[{"page":2,"pages":2,"total":3},[{"id":"C","name":"Gamma"}]]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Indicators(context.Background(), 80)
	require.NoError(t, err)
	assert.Equal(t, []Indicator{{ID: "A", Name: "Alpha"}, {ID: "B", Name: "Beta"}, {ID: "C", Name: "Gamma"}}, got)
}

func TestData_DecodesObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/country/all/indicator/SP.POP.TOTL", r.URL.Path)
		assert.Equal(t, "2000:2001", r.URL.Query().Get("date"))
		assert.Equal(t, "Y", r.URL.Query().Get("frequency"))

		fmt.Fprint(w, `[{"page":1,"pages":1,"total":2},[
			{"indicator":{"id":"SP.POP.TOTL","value":"Population"},"country":{"id":"US","value":"United States"},"countryiso3code":"USA","date":"2001","value":285000000},
			{"indicator":{"id":"SP.POP.TOTL","value":"Population"},"country":{"id":"US","value":"United States"},"countryiso3code":"USA","date":"2000","value":null}
		]]`)
	}))
	defer srv.Close()

	obs, err := newTestClient(srv).Data(context.Background(), "SP.POP.TOTL", DataOptions{
		Dates: &DateRange{Start: 2000, End: 2001},
	})
	require.NoError(t, err)
	require.Len(t, obs, 2)

	assert.Equal(t, "United States", obs[0].Country.Value)
	require.NotNil(t, obs[0].Value)
	assert.InDelta(t, 285000000, *obs[0].Value, 1)
	assert.Nil(t, obs[1].Value)
}

func TestData_CountriesJoinedWithSemicolon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/country/US;CN/indicator/X", r.URL.Path)
		fmt.Fprint(w, `[{"page":1,"pages":1,"total":0},null]`)
	}))
	defer srv.Close()

	obs, err := newTestClient(srv).Data(context.Background(), "X", DataOptions{Countries: []string{"US", "CN"}})
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestData_APIErrorShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The API reports bad requests as a single-element array.
		fmt.Fprint(w, `[{"message":[{"id":"120","key":"Invalid value"}]}]`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Data(context.Background(), "BAD", DataOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response shape")
}

func TestDataframe_PivotsByCountryAndDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/country/all/indicator/GDP.CODE":
			fmt.Fprint(w, `[{"page":1,"pages":1,"total":2},[
				{"indicator":{"id":"GDP.CODE","value":"GDP"},"country":{"id":"US","value":"United States"},"date":"2019","value":21.4},
				{"indicator":{"id":"GDP.CODE","value":"GDP"},"country":{"id":"CN","value":"China"},"date":"2019","value":14.3}
			]]`)
		case "/v2/country/all/indicator/POP.CODE":
			fmt.Fprint(w, `[{"page":1,"pages":1,"total":1},[
				{"indicator":{"id":"POP.CODE","value":"Population"},"country":{"id":"CN","value":"China"},"date":"2019","value":1400000000}
			]]`)
		case "/v2/country/all/indicator/EMPTY.CODE":
			fmt.Fprint(w, `[{"page":1,"pages":0,"total":0},null]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	df, err := newTestClient(srv).Dataframe(context.Background(), []Indicator{
		{ID: "GDP.CODE", Name: "GDP"},
		{ID: "EMPTY.CODE", Name: "Empty"},
		{ID: "POP.CODE", Name: "Population"},
	}, DataOptions{})
	require.NoError(t, err)

	// Indicators that returned no data are dropped from the column list.
	assert.Equal(t, []string{"GDP", "Population"}, df.Columns)

	// Rows sorted by country then date.
	require.Len(t, df.Rows, 2)
	assert.Equal(t, "China", df.Rows[0].Country)
	require.NotNil(t, df.Rows[0].Values["Population"])
	assert.Equal(t, "United States", df.Rows[1].Country)
	_, hasPop := df.Rows[1].Values["Population"]
	assert.False(t, hasPop)
}
