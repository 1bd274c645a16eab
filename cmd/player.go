package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/report"
)

var battingCmd = &cobra.Command{
	Use:   "batting <player>",
	Short: "Show a batter's record overall and against each opponent",
	Long: `Show a batter's regulation-innings record (super overs excluded), followed
by one row per opponent. Player names use the dataset's spelling, e.g. "V Kohli".`,
	Args: cobra.ExactArgs(1),
	RunE: runBatting,
}

var bowlingCmd = &cobra.Command{
	Use:   "bowling <player>",
	Short: "Show a bowler's record overall and against each opponent",
	Long: `Show a bowler's regulation-innings record (super overs excluded), followed
by one row per opponent. Player names use the dataset's spelling, e.g. "JJ Bumrah".`,
	Args: cobra.ExactArgs(1),
	RunE: runBowling,
}

func runBatting(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	player := args[0]
	rep := aggregator.BattingReportFor(cmd.Context(), ds, player)
	if jsonOutput {
		return printJSON(map[string]aggregator.BattingReport{player: rep})
	}
	if rep.All == nil {
		fmt.Fprintf(os.Stderr, "No batting deliveries found for %q.\n", player)
		return nil
	}
	report.PrintBattingReport(os.Stdout, player, rep)
	return nil
}

func runBowling(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	player := args[0]
	rep := aggregator.BowlingReportFor(cmd.Context(), ds, player)
	if jsonOutput {
		return printJSON(map[string]aggregator.BowlingReport{player: rep})
	}
	if rep.All == nil {
		fmt.Fprintf(os.Stderr, "No bowling deliveries found for %q.\n", player)
		return nil
	}
	report.PrintBowlingReport(os.Stdout, player, rep)
	return nil
}
