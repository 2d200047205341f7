package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/indicator-cli/internal/loader"
)

var hdiCmd = &cobra.Command{
	Use:   "hdi",
	Short: "Load and reshape an HDR composite-index file",
	Long: `Reads a Human Development Report composite-index file (CSV or XLSX),
reshapes the metric_year columns into long format, and writes the filtered
rows as CSV.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "hdi"))

		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			file = cfg.HDI.File
		}
		if file == "" {
			return eris.New("hdi: --file or the hdi.file config key is required")
		}

		metricsPath, _ := cmd.Flags().GetString("metrics")
		metrics, err := loadMetrics(metricsPath)
		if err != nil {
			return err
		}

		countries, _ := cmd.Flags().GetString("countries")
		start, _ := cmd.Flags().GetInt("start")
		end, _ := cmd.Flags().GetInt("end")

		rows, err := loader.HDI(file, metrics, loader.HDIOptions{
			Countries: splitAndTrim(countries),
			StartYear: yearBound(start),
			EndYear:   yearBound(end),
		})
		if err != nil {
			return err
		}
		log.Info("loaded hdi rows", zap.String("file", file), zap.Int("rows", len(rows)))

		out, _ := cmd.Flags().GetString("out")
		w, err := openOutput(out)
		if err != nil {
			return err
		}
		defer w.Close() //nolint:errcheck

		records := make([][]string, 0, len(rows))
		for _, r := range rows {
			records = append(records, []string{
				r.IDs["iso3"], r.IDs["country"], r.IDs["region"],
				r.Metric, r.MetricName, strconv.Itoa(r.Year), formatValue(r.Value),
			})
		}
		return writeCSV(w, []string{"iso3", "country", "region", "metric", "metric_name", "year", "value"}, records)
	},
}

func init() {
	hdiCmd.Flags().String("file", "", "path to the composite-index file (.csv or .xlsx)")
	hdiCmd.Flags().String("metrics", "", "YAML file mapping metric codes to readable names")
	_ = hdiCmd.MarkFlagRequired("metrics")
	hdiCmd.Flags().String("countries", "", "comma-separated country filter (case-insensitive)")
	hdiCmd.Flags().Int("start", 0, "start year, inclusive (0 = no lower bound)")
	hdiCmd.Flags().Int("end", 0, "end year, inclusive (0 = no upper bound)")
	hdiCmd.Flags().String("out", "", "write CSV here instead of stdout")
	rootCmd.AddCommand(hdiCmd)
}
