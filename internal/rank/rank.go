// Package rank scores a source's indicators by data completeness: the
// fraction of possible (country, year) cells for which the indicator has a
// non-missing observation.
package rank

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/indicator-cli/pkg/worldbank"
)

// provider is the slice of the API client the ranker needs.
type provider interface {
	Indicators(ctx context.Context, source int) ([]worldbank.Indicator, error)
	Data(ctx context.Context, code string, opts worldbank.DataOptions) ([]worldbank.Observation, error)
}

// Ranker ranks a source's indicators by completeness.
type Ranker struct {
	client provider
}

// NewRanker creates a ranker backed by the given API client.
func NewRanker(client provider) *Ranker {
	return &Ranker{client: client}
}

// Options bounds a ranking run.
type Options struct {
	Source    int
	StartYear int
	EndYear   int
	TopN      int // when > 0, truncates the sorted summary
}

// IndicatorCompleteness scores one catalog indicator.
type IndicatorCompleteness struct {
	Code         string
	Name         string
	Completeness float64
	Count        int
}

// Observation is one retrieved non-missing data point.
type Observation struct {
	Indicator string
	Country   string
	Date      string
	Value     float64
}

// Failure records an indicator whose fetch failed. Failed indicators stay in
// the summary with zero retrieved rows.
type Failure struct {
	Code string
	Err  error
}

// Result pairs the ranked summary with the raw accumulated observations.
type Result struct {
	Summary      []IndicatorCompleteness
	Observations []Observation
	Failures     []Failure
}

// Rank fetches every indicator in the source's catalog, one sequential
// request per indicator, and scores each by completeness. The denominator is
// shared across all indicators: distinct countries seen anywhere in the
// accumulated data times the number of years in the range. Per-indicator
// fetch failures are isolated — the indicator is recorded under Failures and
// contributes zero rows. A catalog-level failure is logged and yields an
// empty result rather than an error.
func (r *Ranker) Rank(ctx context.Context, opts Options) *Result {
	log := zap.L().With(zap.Int("source", opts.Source))

	catalog, err := r.client.Indicators(ctx, opts.Source)
	if err != nil {
		log.Error("rank: fetch catalog", zap.Error(err))
		return &Result{}
	}
	log.Info("fetched indicator catalog", zap.Int("indicators", len(catalog)))

	dates := &worldbank.DateRange{Start: opts.StartYear, End: opts.EndYear}

	var (
		observations []Observation
		failures     []Failure
		counts       = make(map[string]int, len(catalog))
		countries    = make(map[string]bool)
	)

	for _, ind := range catalog {
		obs, err := r.client.Data(ctx, ind.ID, worldbank.DataOptions{Dates: dates})
		if err != nil {
			failures = append(failures, Failure{Code: ind.ID, Err: err})
			log.Warn("skip indicator", zap.String("indicator", ind.ID), zap.Error(err))
			continue
		}
		for _, o := range obs {
			if o.Value == nil {
				continue
			}
			observations = append(observations, Observation{
				Indicator: ind.ID,
				Country:   o.Country.Value,
				Date:      o.Date,
				Value:     *o.Value,
			})
			counts[ind.ID]++
			countries[o.Country.Value] = true
		}
	}
	log.Info("retrieved data points", zap.Int("rows", len(observations)))

	totalPossible := len(countries) * (opts.EndYear - opts.StartYear + 1)

	summary := make([]IndicatorCompleteness, 0, len(catalog))
	for _, ind := range catalog {
		count := counts[ind.ID]
		completeness := 0.0
		if totalPossible > 0 {
			completeness = float64(count) / float64(totalPossible)
		}
		summary = append(summary, IndicatorCompleteness{
			Code:         ind.ID,
			Name:         ind.Name,
			Completeness: completeness,
			Count:        count,
		})
	}

	// Stable sort: ties keep catalog order.
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Completeness > summary[j].Completeness
	})

	if opts.TopN > 0 && opts.TopN < len(summary) {
		summary = summary[:opts.TopN]
	}

	log.Info("ranking complete",
		zap.Int("indicators", len(summary)),
		zap.Int("failed_indicators", len(failures)),
	)

	return &Result{Summary: summary, Observations: observations, Failures: failures}
}
