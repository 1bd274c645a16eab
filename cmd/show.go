package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/report"
)

var h2hCmd = &cobra.Command{
	Use:   "h2h <team1> <team2>",
	Short: "Show the head-to-head record of two teams",
	Long: `Show how many matches two teams played against each other, how many
each won, and how many ended without a winner. Quote team names with spaces:

  iplstats h2h "Chennai Super Kings" "Mumbai Indians"`,
	Args: cobra.ExactArgs(2),
	RunE: runH2H,
}

var teamCmd = &cobra.Command{
	Use:   "team <team>",
	Short: "Show a team's overall record",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeam,
}

func runH2H(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	h := aggregator.HeadToHead(ds.Matches(), args[0], args[1])
	if jsonOutput {
		return printJSON(h)
	}
	report.PrintHeadToHead(os.Stdout, h)
	return nil
}

func runTeam(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	team := args[0]
	r := aggregator.TeamRecordFor(ds.Matches(), team)
	if jsonOutput {
		return printJSON(r)
	}
	report.PrintTeamRecord(os.Stdout, team, r)
	return nil
}
