package aggregator

import (
	"math"

	"github.com/pable/go-ipl-stats/internal/model"
)

// Innings-score milestones.
const (
	fiftyRuns   = 50
	hundredRuns = 100
)

// Batting computes player's batting record over rows, which the caller has
// already restricted to regulation innings. It returns nil when player neither
// batted nor was dismissed in rows.
func Batting(player string, rows []model.EnrichedDelivery) *model.BattingRecord {
	r, present := battingRecord(player, rows)
	if !present {
		return nil
	}
	return &r
}

// battingAgainst is the breakdown form of Batting: rows are one opponent's
// deliveries, nil only when there are none, and a player absent from them
// gets a zero record.
func battingAgainst(player string, rows []model.EnrichedDelivery) *model.BattingRecord {
	if len(rows) == 0 {
		return nil
	}
	r, _ := battingRecord(player, rows)
	return &r
}

// battingRecord accumulates the record and reports whether player appeared
// in rows as batter or as player_out.
func battingRecord(player string, rows []model.EnrichedDelivery) (r model.BattingRecord, present bool) {
	if player == "" {
		// Empty player_out cells would otherwise match.
		rows = nil
	}
	runsByMatch := make(map[int]int)
	momMatches := make(map[int]struct{})

	for i := range rows {
		d := &rows[i]
		if d.PlayerOut == player {
			r.Dismissals++
			present = true
		}
		if d.Batter != player {
			continue
		}
		present = true

		runsByMatch[d.ID] += d.BatsmanRun

		r.Runs += d.BatsmanRun
		// Boundaries count off the bat regardless of non_boundary.
		switch d.BatsmanRun {
		case 4:
			r.Fours++
		case 6:
			r.Sixes++
		}
		if d.ExtraType.IsBallFaced() {
			r.BallsFaced++
		}
		if d.PlayerOfMatch == player {
			momMatches[d.ID] = struct{}{}
		}
	}
	r.Innings = len(runsByMatch)
	for _, runs := range runsByMatch {
		switch {
		case runs >= hundredRuns:
			r.Hundreds++
		case runs >= fiftyRuns:
			r.Fifties++
		}
	}
	r.ManOfMatch = len(momMatches)
	r.NotOut = r.Innings - r.Dismissals

	if r.Dismissals > 0 {
		r.Average = model.Stat(float64(r.Runs) / float64(r.Dismissals))
	} else {
		r.Average = model.Stat(math.Inf(1))
	}
	if r.BallsFaced > 0 {
		r.StrikeRate = model.Stat(float64(r.Runs) * 100 / float64(r.BallsFaced))
	}
	return r, present
}
