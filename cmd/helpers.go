package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/indicator-cli/internal/frame"
)

// loadMetrics reads an ordered code-to-name mapping from a YAML file. The
// document is walked as a yaml.Node so mapping order survives; a plain map
// unmarshal would lose it, and both the EPI concatenation order and the
// ranker's tie-breaking depend on it.
func loadMetrics(path string) (frame.Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read metrics file %s", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "parse metrics file %s", path)
	}
	if len(doc.Content) == 0 {
		return nil, eris.Errorf("metrics file %s is empty", path)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, eris.Errorf("metrics file %s: top level must be a mapping", path)
	}

	var metrics frame.Metrics
	for i := 0; i+1 < len(root.Content); i += 2 {
		metrics = append(metrics, frame.Metric{
			Code: root.Content[i].Value,
			Name: root.Content[i+1].Value,
		})
	}
	return metrics, nil
}

// splitAndTrim splits a comma-separated flag value, dropping empty entries.
func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// yearBound converts a year flag to an optional bound; 0 means unset.
func yearBound(y int) *int {
	if y == 0 {
		return nil
	}
	return &y
}

// openOutput returns the CSV destination: the --out file, or stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// formatValue renders a possibly missing value for CSV output.
func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// writeCSV writes a header plus rows and flushes.
func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return eris.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}
