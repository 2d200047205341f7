package frame

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hdiSchema(metrics Metrics) Schema {
	return Schema{
		IDColumns: []string{"iso3", "country", "region"},
		Metrics:   metrics,
		Joiner:    "_",
		YearSep:   "_",
	}
}

func TestMelt_RowCount(t *testing.T) {
	f := &Frame{
		Columns: []string{"iso3", "country", "region", "edu_2010", "edu_2011", "le_2010", "notes"},
		Rows: [][]string{
			{"NOR", "Norway", "Europe", "0.9", "0.91", "81.1", "x"},
			{"TCD", "Chad", "Africa", "0.3", "", "52.5", "y"},
			{"BRA", "Brazil", "Americas", "0.7", "0.71", "74.0", "z"},
		},
	}
	metrics := Metrics{{Code: "edu", Name: "Education Index"}, {Code: "le", Name: "Life Expectancy"}}

	rows, err := Melt(f, hdiSchema(metrics))
	require.NoError(t, err)

	// 3 entity rows x 3 identified value columns, nothing dropped.
	assert.Len(t, rows, 9)
}

func TestMelt_ColumnRoundTrip(t *testing.T) {
	f := &Frame{
		Columns: []string{"iso3", "country", "region", "edu_2010", "le_f_2011"},
		Rows:    [][]string{{"NOR", "Norway", "Europe", "0.9", "84.2"}},
	}
	metrics := Metrics{{Code: "edu", Name: "Education Index"}, {Code: "le_f", Name: "Life Expectancy, female"}}

	rows, err := Melt(f, hdiSchema(metrics))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Reconstructing metric_year recovers the original column names exactly,
	// including metrics that themselves contain the separator.
	assert.Equal(t, "edu_2010", rows[0].Metric+"_"+strconv.Itoa(rows[0].Year))
	assert.Equal(t, "le_f_2011", rows[1].Metric+"_"+strconv.Itoa(rows[1].Year))
	assert.Equal(t, "le_f", rows[1].Metric)
}

func TestMelt_HDIScenario(t *testing.T) {
	f := &Frame{
		Columns: []string{"iso3", "country", "region", "edu_2010", "edu_2011"},
		Rows: [][]string{
			{"NOR", "Norway", "Europe", "0.9", "0.91"},
			{"TCD", "Chad", "Africa", "0.3", "0.31"},
		},
	}
	metrics := Metrics{{Code: "edu", Name: "Education Index"}}

	rows, err := Melt(f, hdiSchema(metrics))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	for _, r := range rows {
		assert.Equal(t, "edu", r.Metric)
		assert.Equal(t, "Education Index", r.MetricName)
	}
	assert.Equal(t, "Norway", rows[0].IDs["country"])
	assert.Equal(t, 2010, rows[0].Year)
	require.NotNil(t, rows[0].Value)
	assert.InDelta(t, 0.9, *rows[0].Value, 1e-9)
}

func TestMelt_MissingValuesPassThroughAsNil(t *testing.T) {
	f := &Frame{
		Columns: []string{"iso3", "country", "region", "edu_2010", "edu_2011"},
		Rows:    [][]string{{"TCD", "Chad", "Africa", "", ".."}},
	}
	metrics := Metrics{{Code: "edu", Name: "Education Index"}}

	rows, err := Melt(f, hdiSchema(metrics))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Empty and non-numeric cells are missing, never zero.
	assert.Nil(t, rows[0].Value)
	assert.Nil(t, rows[1].Value)
}

func TestMelt_UnmappedMetricKeepsEmptyName(t *testing.T) {
	f := &Frame{
		Columns: []string{"iso3", "country", "region", "edu_extra_2010"},
		Rows:    [][]string{{"NOR", "Norway", "Europe", "1.0"}},
	}
	// "edu" matches the column prefix but the decomposed metric is
	// "edu_extra", which the mapping does not know.
	metrics := Metrics{{Code: "edu", Name: "Education Index"}}

	rows, err := Melt(f, hdiSchema(metrics))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "edu_extra", rows[0].Metric)
	assert.Equal(t, "", rows[0].MetricName)
}

func TestMelt_BadYearIsStructuralError(t *testing.T) {
	f := &Frame{
		Columns: []string{"iso3", "country", "region", "edu_latest"},
		Rows:    [][]string{{"NOR", "Norway", "Europe", "0.9"}},
	}
	metrics := Metrics{{Code: "edu", Name: "Education Index"}}

	_, err := Melt(f, hdiSchema(metrics))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse year")
}

func TestMelt_EPIConvention(t *testing.T) {
	f := &Frame{
		Columns: []string{"iso", "country", "bca.ind.1990", "bca.ind.1991"},
		Rows:    [][]string{{"USA", "United States of America", "10.5", ""}},
	}
	s := Schema{
		IDColumns: []string{"iso", "country"},
		Metrics:   Metrics{{Code: "bca", Name: "Biodiversity Conservation Area"}},
		Joiner:    ".ind.",
		YearSep:   ".",
	}

	rows, err := Melt(f, s)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The year is the text after the last dot; the metric keeps the rest.
	assert.Equal(t, "bca.ind", rows[0].Metric)
	assert.Equal(t, 1990, rows[0].Year)
	assert.Equal(t, "bca.ind.1991", rows[1].Metric+"."+strconv.Itoa(rows[1].Year))
	require.NotNil(t, rows[0].Value)
	assert.Nil(t, rows[1].Value)
}

func TestMelt_NoValueColumns(t *testing.T) {
	f := &Frame{
		Columns: []string{"iso3", "country", "region"},
		Rows:    [][]string{{"NOR", "Norway", "Europe"}},
	}
	rows, err := Melt(f, hdiSchema(Metrics{{Code: "edu", Name: "Education Index"}}))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
