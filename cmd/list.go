package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/report"
)

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List the seasons in the dataset",
	Args:  cobra.NoArgs,
	RunE:  runSeasons,
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List every team that has played a match",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

func runSeasons(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	seasons := aggregator.Seasons(ds.Matches())
	if jsonOutput {
		return printJSON(map[string][]string{"seasons": seasons})
	}
	report.PrintList(os.Stdout, "SEASON", seasons)
	return nil
}

func runTeams(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	teams := aggregator.Teams(ds.Matches())
	if jsonOutput {
		return printJSON(map[string][]string{"teams": teams})
	}
	report.PrintList(os.Stdout, "TEAM", teams)
	return nil
}
