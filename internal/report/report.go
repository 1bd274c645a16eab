// Package report renders query results as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/model"
)

const (
	absent   = "—"
	infinity = "∞"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// stat formats a rate with two decimals. +Inf prints as infinity and NaN as absent.
func stat(s model.Stat) string {
	switch {
	case s.IsNaN():
		return absent
	case s.IsInf():
		return infinity
	}
	return fmt.Sprintf("%.2f", float64(s))
}

// PrintList prints a single-column table of names.
func PrintList(w io.Writer, header string, items []string) {
	table := newTable(w)
	table.Header("#", header)
	for i, item := range items {
		table.Append(strconv.Itoa(i+1), item)
	}
	table.Render()
}

// PrintHeadToHead prints the head-to-head summary of two teams.
func PrintHeadToHead(w io.Writer, h model.HeadToHead) {
	fmt.Fprintf(w, "\n%s vs %s\n\n", h.TeamA, h.TeamB)
	table := newTable(w)
	table.Header("MATCHES", "WINS "+h.TeamA, "WINS "+h.TeamB, "DRAWS")
	table.Append(
		strconv.Itoa(h.TotalMatches),
		strconv.Itoa(h.WinsA),
		strconv.Itoa(h.WinsB),
		strconv.Itoa(h.Draws),
	)
	table.Render()
}

// PrintTeamRecord prints a team's overall record.
func PrintTeamRecord(w io.Writer, team string, r model.TeamRecord) {
	fmt.Fprintf(w, "\n%s\n\n", team)
	table := newTable(w)
	table.Header("PLAYED", "WON", "LOST", "NR", "TITLES", "WIN%")
	winPct := absent
	if r.MatchesPlayed > 0 {
		winPct = fmt.Sprintf("%.1f%%", float64(r.Won)*100/float64(r.MatchesPlayed))
	}
	table.Append(
		strconv.Itoa(r.MatchesPlayed),
		strconv.Itoa(r.Won),
		strconv.Itoa(r.Loss),
		strconv.Itoa(r.NoResult),
		strconv.Itoa(r.Title),
		winPct,
	)
	table.Render()
}

// PrintBattingReport prints one row for the overall record and one per
// opponent, opponents sorted by name.
func PrintBattingReport(w io.Writer, player string, rep model.PlayerReport[model.BattingRecord]) {
	fmt.Fprintf(w, "\nBatting: %s\n\n", player)
	table := newTable(w)
	table.Header("VS", "INN", "RUNS", "BF", "AVG", "SR", "4s", "6s", "50s", "100s", "NO", "MOM")

	row := func(label string, r *model.BattingRecord) {
		if r == nil {
			table.Append(label, absent, absent, absent, absent, absent, absent, absent, absent, absent, absent, absent)
			return
		}
		table.Append(
			label,
			strconv.Itoa(r.Innings),
			strconv.Itoa(r.Runs),
			strconv.Itoa(r.BallsFaced),
			stat(r.Average),
			stat(r.StrikeRate),
			strconv.Itoa(r.Fours),
			strconv.Itoa(r.Sixes),
			strconv.Itoa(r.Fifties),
			strconv.Itoa(r.Hundreds),
			strconv.Itoa(r.NotOut),
			strconv.Itoa(r.ManOfMatch),
		)
	}

	row("ALL", rep.All)
	for _, team := range sortedKeys(rep.Against) {
		row(team, rep.Against[team])
	}
	table.Render()
}

// PrintBowlingReport prints one row for the overall record and one per
// opponent, opponents sorted by name.
func PrintBowlingReport(w io.Writer, player string, rep model.PlayerReport[model.BowlingRecord]) {
	fmt.Fprintf(w, "\nBowling: %s\n\n", player)
	table := newTable(w)
	table.Header("VS", "INN", "BALLS", "RUNS", "WKTS", "BEST", "ECON", "AVG", "SR", "4s", "6s", "3+W", "MOM")

	row := func(label string, r *model.BowlingRecord) {
		if r == nil {
			table.Append(label, absent, absent, absent, absent, absent, absent, absent, absent, absent, absent, absent, absent)
			return
		}
		best := absent
		if r.BestFigure != nil {
			best = *r.BestFigure
		}
		table.Append(
			label,
			strconv.Itoa(r.Innings),
			strconv.Itoa(r.LegalBalls),
			strconv.Itoa(r.RunsConceded),
			strconv.Itoa(r.Wickets),
			best,
			stat(r.Economy),
			stat(r.Average),
			stat(r.StrikeRate),
			strconv.Itoa(r.Fours),
			strconv.Itoa(r.Sixes),
			strconv.Itoa(r.ThreeWicketHauls),
			strconv.Itoa(r.ManOfMatch),
		)
	}

	row("ALL", rep.All)
	for _, team := range sortedKeys(rep.Against) {
		row(team, rep.Against[team])
	}
	table.Render()
}

// PrintSummary prints dataset load counters.
func PrintSummary(w io.Writer, st dataset.Stats, seasons, teams int) {
	table := newTable(w)
	table.Header("METRIC", "VALUE")
	table.Append("seasons", humanize.Comma(int64(seasons)))
	table.Append("teams", humanize.Comma(int64(teams)))
	table.Append("matches", humanize.Comma(int64(st.Matches)))
	table.Append("deliveries", humanize.Comma(int64(st.Deliveries)))
	table.Append("regulation deliveries", humanize.Comma(int64(st.Regulation)))
	table.Append("orphan deliveries", humanize.Comma(int64(st.OrphanDeliveries)))
	table.Append("unknown batting team", humanize.Comma(int64(st.UnknownBattingTeam)))
	table.Render()
}

// PrintQueryResult prints the columns and rows of an ad-hoc SQL query.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "%s row(s)\n", humanize.Comma(int64(len(rows))))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PrintTeamTrend prints one row per season for a team.
func PrintTeamTrend(w io.Writer, team string, trend []aggregator.SeasonRecord) {
	fmt.Fprintf(w, "\n%s by season\n\n", team)
	table := newTable(w)
	table.Header("SEASON", "PLAYED", "WON", "LOST", "NR", "CHAMPION")
	for _, s := range trend {
		champion := ""
		if s.Record.Title > 0 {
			champion = "yes"
		}
		table.Append(
			s.Season,
			strconv.Itoa(s.Record.MatchesPlayed),
			strconv.Itoa(s.Record.Won),
			strconv.Itoa(s.Record.Loss),
			strconv.Itoa(s.Record.NoResult),
			champion,
		)
	}
	table.Render()
}
