package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/indicator-cli/internal/frame"
)

func TestLoadMetrics_PreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"BCA: Biodiversity Conservation Area\n"+
			"BER: Biodiversity Expenditure Ratio\n"+
			"ACD: Adjusted Emissions Growth Rate\n"), 0o644))

	metrics, err := loadMetrics(path)
	require.NoError(t, err)

	assert.Equal(t, frame.Metrics{
		{Code: "BCA", Name: "Biodiversity Conservation Area"},
		{Code: "BER", Name: "Biodiversity Expenditure Ratio"},
		{Code: "ACD", Name: "Adjusted Emissions Growth Rate"},
	}, metrics)
}

func TestLoadMetrics_Errors(t *testing.T) {
	_, err := loadMetrics(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o644))
	_, err = loadMetrics(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a mapping")
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Nil(t, splitAndTrim("  "))
	assert.Equal(t, []string{"US", "CN"}, splitAndTrim("US, CN"))
	assert.Equal(t, []string{"France"}, splitAndTrim("France,,"))
}

func TestYearBound(t *testing.T) {
	assert.Nil(t, yearBound(0))
	b := yearBound(2010)
	require.NotNil(t, b)
	assert.Equal(t, 2010, *b)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(nil))
	v := 0.912
	assert.Equal(t, "0.912", formatValue(&v))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSV(&buf, []string{"a", "b"}, [][]string{{"1", "2"}, {"3", ""}})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,\n", buf.String())
}
