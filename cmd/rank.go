package main

import (
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/indicator-cli/internal/fetcher"
	"github.com/sells-group/indicator-cli/internal/rank"
	"github.com/sells-group/indicator-cli/pkg/worldbank"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a source's indicators by data completeness",
	Long: `Fetches the full indicator catalog for a World Bank source, retrieves each
indicator's annual observations one request at a time, and ranks the
indicators by the fraction of possible (country, year) cells that hold data.
Indicators whose fetch fails are kept in the ranking with zero data points.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runID := uuid.NewString()
		log := zap.L().With(zap.String("command", "rank"), zap.String("run_id", runID))

		source, _ := cmd.Flags().GetInt("source")
		if !cmd.Flags().Changed("source") {
			source = cfg.WorldBank.Source
		}
		start, _ := cmd.Flags().GetInt("start")
		end, _ := cmd.Flags().GetInt("end")
		top, _ := cmd.Flags().GetInt("top")

		client := worldbank.New(
			fetcher.NewHTTPFetcher(cfg.Fetch.HTTPOptions()),
			worldbank.Options{BaseURL: cfg.WorldBank.BaseURL, PerPage: cfg.WorldBank.PerPage},
		)

		res := rank.NewRanker(client).Rank(ctx, rank.Options{
			Source:    source,
			StartYear: start,
			EndYear:   end,
			TopN:      top,
		})
		if len(res.Summary) == 0 {
			log.Warn("no ranking produced", zap.Int("source", source))
			return nil
		}
		log.Info("ranked indicators",
			zap.Int("source", source),
			zap.Int("indicators", len(res.Summary)),
			zap.Int("data_points", len(res.Observations)),
			zap.Int("failures", len(res.Failures)),
		)

		out, _ := cmd.Flags().GetString("out")
		w, err := openOutput(out)
		if err != nil {
			return err
		}
		defer w.Close() //nolint:errcheck

		records := make([][]string, 0, len(res.Summary))
		for _, s := range res.Summary {
			records = append(records, []string{
				s.Code, s.Name,
				strconv.FormatFloat(s.Completeness, 'f', 6, 64),
				strconv.Itoa(s.Count),
			})
		}
		return writeCSV(w, []string{"indicator_code", "indicator_name", "completeness", "data_points"}, records)
	},
}

func init() {
	rankCmd.Flags().Int("source", 0, "World Bank source id (default from config)")
	rankCmd.Flags().Int("start", 2000, "start year, inclusive")
	rankCmd.Flags().Int("end", 2020, "end year, inclusive")
	rankCmd.Flags().Int("top", 10, "truncate the ranking to the top N indicators (0 = all)")
	rankCmd.Flags().String("out", "", "write CSV here instead of stdout")
	rootCmd.AddCommand(rankCmd)
}
