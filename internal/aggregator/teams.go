package aggregator

import (
	"sort"

	"github.com/pable/go-ipl-stats/internal/model"
)

// Seasons returns the distinct seasons in first-seen order.
func Seasons(matches []model.Match) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range matches {
		if _, ok := seen[m.Season]; ok {
			continue
		}
		seen[m.Season] = struct{}{}
		out = append(out, m.Season)
	}
	return out
}

// Teams returns every team that appears as Team1 or Team2, sorted by name.
func Teams(matches []model.Match) []string {
	seen := make(map[string]struct{})
	for _, m := range matches {
		seen[m.Team1] = struct{}{}
		seen[m.Team2] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HeadToHead tallies the matches played between a and b, in either order.
// A side that never won simply has zero wins. Draws cover ties and no results.
func HeadToHead(matches []model.Match, a, b string) model.HeadToHead {
	h := model.HeadToHead{TeamA: a, TeamB: b}
	for _, m := range matches {
		if !(m.Team1 == a && m.Team2 == b) && !(m.Team1 == b && m.Team2 == a) {
			continue
		}
		h.TotalMatches++
		switch m.WinningTeam {
		case a:
			h.WinsA++
		case b:
			h.WinsB++
		}
	}
	h.Draws = h.TotalMatches - h.WinsA - h.WinsB
	return h
}

// TeamRecordFor summarises every match team played.
func TeamRecordFor(matches []model.Match, team string) model.TeamRecord {
	var r model.TeamRecord
	for _, m := range matches {
		if !m.Involves(team) {
			continue
		}
		r.MatchesPlayed++
		switch {
		case !m.HasResult():
			r.NoResult++
		case m.WinningTeam == team:
			r.Won++
			if m.IsFinal() {
				r.Title++
			}
		}
	}
	r.Loss = r.MatchesPlayed - r.Won - r.NoResult
	return r
}

// SeasonRecord is a team's record within one season.
type SeasonRecord struct {
	Season string           `json:"season"`
	Record model.TeamRecord `json:"record"`
}

// TeamTrend returns team's record per season, seasons in first-seen order.
// Seasons the team did not play are omitted.
func TeamTrend(matches []model.Match, team string) []SeasonRecord {
	bySeason := make(map[string][]model.Match)
	for _, m := range matches {
		if m.Involves(team) {
			bySeason[m.Season] = append(bySeason[m.Season], m)
		}
	}
	var out []SeasonRecord
	for _, season := range Seasons(matches) {
		ms, ok := bySeason[season]
		if !ok {
			continue
		}
		out = append(out, SeasonRecord{Season: season, Record: TeamRecordFor(ms, team)})
	}
	return out
}
