package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <team>",
	Short: "Season-by-season record for a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	team := args[0]
	trend := aggregator.TeamTrend(ds.Matches(), team)
	if jsonOutput {
		return printJSON(map[string][]aggregator.SeasonRecord{team: trend})
	}
	if len(trend) == 0 {
		fmt.Println("no matches found")
		return nil
	}
	report.PrintTeamTrend(os.Stdout, team, trend)
	return nil
}
