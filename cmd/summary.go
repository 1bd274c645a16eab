package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/report"
)

// summaryCmd is the cobra command for displaying a high-level dataset overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the dataset",
	Long: `Display counts for the loaded dataset: seasons, teams, matches, deliveries,
and the delivery rows that could not be joined to their match.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	st := ds.Stats()
	seasons := aggregator.Seasons(ds.Matches())
	teams := aggregator.Teams(ds.Matches())

	if jsonOutput {
		return printJSON(map[string]any{
			"source":               cfg.Data.Source,
			"seasons":              len(seasons),
			"teams":                len(teams),
			"matches":              st.Matches,
			"deliveries":           st.Deliveries,
			"regulationDeliveries": st.Regulation,
			"orphanDeliveries":     st.OrphanDeliveries,
			"unknownBattingTeam":   st.UnknownBattingTeam,
		})
	}

	fmt.Fprintf(os.Stdout, "\n=== Dataset Summary (%s) ===\n\n", cfg.Data.Source)
	report.PrintSummary(os.Stdout, st, len(seasons), len(teams))
	if len(seasons) > 0 {
		fmt.Fprintf(os.Stdout, "\nSeasons: %s → %s\n", seasons[0], seasons[len(seasons)-1])
	}
	return nil
}
