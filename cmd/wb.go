package main

import (
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/indicator-cli/internal/fetcher"
	"github.com/sells-group/indicator-cli/internal/loader"
	"github.com/sells-group/indicator-cli/pkg/worldbank"
)

var wbCmd = &cobra.Command{
	Use:   "wb",
	Short: "Fetch World Bank indicator data",
	Long: `Fetches annual observations for the mapped indicators from the World Bank
API and writes a Country, Year, per-indicator table as CSV. With no year
bounds the provider's full default range is returned.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("command", "wb"))

		metricsPath, _ := cmd.Flags().GetString("metrics")
		metrics, err := loadMetrics(metricsPath)
		if err != nil {
			return err
		}

		countries, _ := cmd.Flags().GetString("countries")
		start, _ := cmd.Flags().GetInt("start")
		end, _ := cmd.Flags().GetInt("end")

		client := worldbank.New(
			fetcher.NewHTTPFetcher(cfg.Fetch.HTTPOptions()),
			worldbank.Options{BaseURL: cfg.WorldBank.BaseURL, PerPage: cfg.WorldBank.PerPage},
		)

		table, err := loader.WorldBank(ctx, client, metrics, loader.WorldBankOptions{
			Countries: splitAndTrim(countries),
			StartYear: yearBound(start),
			EndYear:   yearBound(end),
		})
		if err != nil {
			return err
		}
		log.Info("fetched world bank table",
			zap.Int("rows", len(table.Rows)),
			zap.Int("indicators", len(table.Columns)-2),
		)

		out, _ := cmd.Flags().GetString("out")
		w, err := openOutput(out)
		if err != nil {
			return err
		}
		defer w.Close() //nolint:errcheck

		records := make([][]string, 0, len(table.Rows))
		for _, r := range table.Rows {
			rec := make([]string, 0, len(table.Columns))
			rec = append(rec, r.Country, strconv.Itoa(r.Year))
			for _, v := range r.Values {
				rec = append(rec, formatValue(v))
			}
			records = append(records, rec)
		}
		return writeCSV(w, table.Columns, records)
	},
}

func init() {
	wbCmd.Flags().String("metrics", "", "YAML file mapping indicator codes to readable names")
	_ = wbCmd.MarkFlagRequired("metrics")
	wbCmd.Flags().String("countries", "", "comma-separated ISO2 country codes (empty = all)")
	wbCmd.Flags().Int("start", 0, "start year, inclusive (0 = provider default range)")
	wbCmd.Flags().Int("end", 0, "end year, inclusive (0 = provider default range)")
	wbCmd.Flags().String("out", "", "write CSV here instead of stdout")
	rootCmd.AddCommand(wbCmd)
}
