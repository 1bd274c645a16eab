package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/report"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Load the dataset once and query it interactively. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	cGreeting.Println("iplstats shell")
	cMuted.Printf("%d matches, %d deliveries loaded; type 'help' or 'exit'\n",
		ds.Stats().Matches, ds.Stats().Deliveries)
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("iplstats")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens, err := splitArgs(line)
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "seasons":
			report.PrintList(os.Stdout, "SEASON", aggregator.Seasons(ds.Matches()))
		case "teams":
			report.PrintList(os.Stdout, "TEAM", aggregator.Teams(ds.Matches()))
		case "summary":
			report.PrintSummary(os.Stdout, ds.Stats(),
				len(aggregator.Seasons(ds.Matches())), len(aggregator.Teams(ds.Matches())))
		case "h2h":
			if len(args) != 2 {
				cError.Fprintln(os.Stderr, `usage: h2h "<team1>" "<team2>"`)
				continue
			}
			report.PrintHeadToHead(os.Stdout, aggregator.HeadToHead(ds.Matches(), args[0], args[1]))
		case "team":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, `usage: team "<team>"`)
				continue
			}
			report.PrintTeamRecord(os.Stdout, args[0], aggregator.TeamRecordFor(ds.Matches(), args[0]))
		case "trend":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, `usage: trend "<team>"`)
				continue
			}
			report.PrintTeamTrend(os.Stdout, args[0], aggregator.TeamTrend(ds.Matches(), args[0]))
		case "batting", "bowling":
			if len(args) != 1 {
				cError.Fprintf(os.Stderr, "usage: %s \"<player>\"\n", name)
				continue
			}
			shellPlayer(cmd, ds, name, args[0])
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"seasons", "list all seasons"},
		{"teams", "list all teams"},
		{"summary", "dataset counts"},
		{`h2h "<team1>" "<team2>"`, "head-to-head record of two teams"},
		{`team "<team>"`, "a team's overall record"},
		{`trend "<team>"`, "a team's record season by season"},
		{`batting "<player>"`, "batting record, overall and per opponent"},
		{`bowling "<player>"`, "bowling record, overall and per opponent"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellPlayer(cmd *cobra.Command, ds *dataset.Dataset, kind, player string) {
	if kind == "batting" {
		rep := aggregator.BattingReportFor(cmd.Context(), ds, player)
		if rep.All == nil {
			cWarn.Fprintf(os.Stderr, "no batting deliveries for %q\n", player)
			return
		}
		report.PrintBattingReport(os.Stdout, player, rep)
		return
	}
	rep := aggregator.BowlingReportFor(cmd.Context(), ds, player)
	if rep.All == nil {
		cWarn.Fprintf(os.Stderr, "no bowling deliveries for %q\n", player)
		return
	}
	report.PrintBowlingReport(os.Stdout, player, rep)
}

// splitArgs splits a shell line on whitespace, keeping double-quoted
// segments together so team and player names may contain spaces.
func splitArgs(line string) ([]string, error) {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case !quoted && (r == ' ' || r == '\t'):
			if pending {
				out = append(out, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote")
	}
	if pending {
		out = append(out, cur.String())
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return out, nil
}
