package aggregator

import (
	"fmt"
	"math"
	"sort"

	"github.com/pable/go-ipl-stats/internal/model"
)

// threeWicketHaul is the wickets-in-a-match threshold for a 3+W haul.
const threeWicketHaul = 3

// spell is a bowler's wickets and runs conceded in one match.
type spell struct {
	matchID int
	wickets int
	runs    int
}

// Bowling computes player's bowling record over rows, which the caller has
// already restricted to regulation innings. It returns nil when player bowled
// no delivery in rows.
func Bowling(player string, rows []model.EnrichedDelivery) *model.BowlingRecord {
	r := bowlingRecord(player, rows)
	if r.Innings == 0 {
		return nil
	}
	return &r
}

// bowlingAgainst is the breakdown form of Bowling: rows are one opponent's
// deliveries, nil only when there are none. A bowler who never bowled to the
// opponent gets a zero-innings record with no best figure.
func bowlingAgainst(player string, rows []model.EnrichedDelivery) *model.BowlingRecord {
	if len(rows) == 0 {
		return nil
	}
	r := bowlingRecord(player, rows)
	return &r
}

func bowlingRecord(player string, rows []model.EnrichedDelivery) model.BowlingRecord {
	var r model.BowlingRecord
	spells := make(map[int]*spell)
	momMatches := make(map[int]struct{})

	for i := range rows {
		d := &rows[i]
		if player == "" || d.Bowler != player {
			continue
		}

		sp := spells[d.ID]
		if sp == nil {
			sp = &spell{matchID: d.ID}
			spells[d.ID] = sp
		}
		sp.wickets += d.IsBowlerWicket
		sp.runs += d.BowlerRun

		r.RunsConceded += d.BowlerRun
		r.Wickets += d.IsBowlerWicket
		if d.ExtraType.IsLegalDelivery() {
			r.LegalBalls++
		}
		// Overthrows and byes that reach the rope are not boundaries conceded.
		if !d.NonBoundary {
			switch d.BatsmanRun {
			case 4:
				r.Fours++
			case 6:
				r.Sixes++
			}
		}
		if d.PlayerOfMatch == player {
			momMatches[d.ID] = struct{}{}
		}
	}
	r.Innings = len(spells)
	r.ManOfMatch = len(momMatches)

	if r.LegalBalls > 0 {
		r.Economy = model.Stat(float64(r.RunsConceded) * 6 / float64(r.LegalBalls))
	}
	if r.Wickets > 0 {
		r.Average = model.Stat(float64(r.RunsConceded) / float64(r.Wickets))
		r.StrikeRate = model.Stat(float64(r.LegalBalls) * 100 / float64(r.Wickets))
	} else {
		// No wickets: average is +Inf but strike rate is NaN.
		r.Average = model.Stat(math.Inf(1))
		r.StrikeRate = model.Stat(math.NaN())
	}

	ordered := make([]spell, 0, len(spells))
	for _, sp := range spells {
		if sp.wickets >= threeWicketHaul {
			r.ThreeWicketHauls++
		}
		ordered = append(ordered, *sp)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.wickets != b.wickets {
			return a.wickets > b.wickets
		}
		if a.runs != b.runs {
			return a.runs < b.runs
		}
		return a.matchID < b.matchID
	})
	if len(ordered) > 0 {
		best := fmt.Sprintf("%d/%d", ordered[0].wickets, ordered[0].runs)
		r.BestFigure = &best
	}
	return r
}
