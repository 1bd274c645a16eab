package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/report"
	"github.com/pable/go-ipl-stats/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the imported tables",
	Long: `Run an arbitrary SQL query against the SQLite database written by 'import'
and print results as a table.

Schema overview:
  matches(id, load_order, season, match_number, city, match_date, venue,
    team1, team2, winning_team, player_of_match)
  deliveries(seq, match_id, innings, over_number, ball_number, batter, bowler,
    non_striker, extra_type, batsman_run, extras_run, total_run, non_boundary,
    is_wicket_delivery, player_out, kind, fielders_involved, batting_team)

Empty strings stand for missing values, e.g. WHERE winning_team = '' finds no results.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(cfg.Data.DB)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}
