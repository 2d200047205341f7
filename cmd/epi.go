package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/indicator-cli/internal/loader"
)

var epiCmd = &cobra.Command{
	Use:   "epi",
	Short: "Load environmental performance indicator files",
	Long: `Loads one {CODE}_ind_na.csv file per metric from a folder, reshapes the
{code}.ind.{year} columns into long format, concatenates the metrics in
mapping order, and writes the filtered rows as CSV. Both year bounds are
required; a missing indicator file aborts the whole load.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "epi"))

		folder, _ := cmd.Flags().GetString("folder")
		if folder == "" {
			folder = cfg.EPI.Folder
		}

		metricsPath, _ := cmd.Flags().GetString("metrics")
		metrics, err := loadMetrics(metricsPath)
		if err != nil {
			return err
		}

		countries, _ := cmd.Flags().GetString("countries")
		start, _ := cmd.Flags().GetInt("start")
		end, _ := cmd.Flags().GetInt("end")

		rows, err := loader.EPI(folder, metrics, loader.EPIOptions{
			Countries: splitAndTrim(countries),
			StartYear: start,
			EndYear:   end,
		})
		if err != nil {
			return err
		}
		log.Info("loaded epi rows", zap.String("folder", folder), zap.Int("rows", len(rows)))

		out, _ := cmd.Flags().GetString("out")
		w, err := openOutput(out)
		if err != nil {
			return err
		}
		defer w.Close() //nolint:errcheck

		records := make([][]string, 0, len(rows))
		for _, r := range rows {
			records = append(records, []string{
				r.ISO, r.Country, r.Variable, r.VariableName,
				strconv.Itoa(r.Year), formatValue(r.Value),
			})
		}
		return writeCSV(w, []string{"iso", "country", "variable", "variable_name", "year", "value"}, records)
	},
}

func init() {
	epiCmd.Flags().String("folder", "", "folder containing the {CODE}_ind_na.csv files")
	epiCmd.Flags().String("metrics", "", "YAML file mapping variable abbreviations to readable names")
	_ = epiCmd.MarkFlagRequired("metrics")
	epiCmd.Flags().String("countries", "", "comma-separated country filter (case-insensitive)")
	epiCmd.Flags().Int("start", 0, "start year, inclusive")
	epiCmd.Flags().Int("end", 0, "end year, inclusive")
	_ = epiCmd.MarkFlagRequired("start")
	_ = epiCmd.MarkFlagRequired("end")
	epiCmd.Flags().String("out", "", "write CSV here instead of stdout")
	rootCmd.AddCommand(epiCmd)
}
