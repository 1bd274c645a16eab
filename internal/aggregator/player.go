// Package aggregator computes team results and player batting/bowling
// records from the enriched dataset. Every function is a pure read of its
// inputs; nothing here mutates the dataset.
package aggregator

import (
	"context"
	"fmt"

	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/logging"
	"github.com/pable/go-ipl-stats/internal/model"
)

// BattingReport is a batter's overall record and one record per opponent.
type BattingReport = model.PlayerReport[model.BattingRecord]

// BowlingReport is a bowler's overall record and one record per opponent.
type BowlingReport = model.PlayerReport[model.BowlingRecord]

// BattingReportFor computes batsman's report over the regulation innings.
// Opponent breakdowns filter on the fielding side; an opponent with no
// deliveries at all is nil, otherwise the entry is a record, possibly zero.
func BattingReportFor(ctx context.Context, ds *dataset.Dataset, batsman string) BattingReport {
	rows := ds.Regulation()
	return BattingReport{
		All: Batting(batsman, rows),
		Against: breakdown(ctx, ds.OpponentUniverse(), func(team string) *model.BattingRecord {
			return battingAgainst(batsman, filterRows(rows, func(d *model.EnrichedDelivery) bool {
				return d.BowlingTeam == team
			}))
		}),
	}
}

// BowlingReportFor computes bowler's report over the regulation innings.
// Opponent breakdowns filter on the batting side, with the same nil rule as
// BattingReportFor.
func BowlingReportFor(ctx context.Context, ds *dataset.Dataset, bowler string) BowlingReport {
	rows := ds.Regulation()
	return BowlingReport{
		All: Bowling(bowler, rows),
		Against: breakdown(ctx, ds.OpponentUniverse(), func(team string) *model.BowlingRecord {
			return bowlingAgainst(bowler, filterRows(rows, func(d *model.EnrichedDelivery) bool {
				return d.BattingTeam == team
			}))
		}),
	}
}

// breakdown runs compute once per team. A failure in one team's record is
// logged and leaves that entry nil without affecting the others.
func breakdown[R any](ctx context.Context, teams []string, compute func(team string) *R) map[string]*R {
	out := make(map[string]*R, len(teams))
	for _, team := range teams {
		rec, err := safeCompute(team, compute)
		if err != nil {
			logging.FromContext(ctx).Error("opponent breakdown failed", "team", team, "error", err)
		}
		out[team] = rec
	}
	return out
}

func safeCompute[R any](team string, compute func(string) *R) (rec *R, err error) {
	defer func() {
		if p := recover(); p != nil {
			rec, err = nil, fmt.Errorf("against %s: %v", team, p)
		}
	}()
	return compute(team), nil
}

func filterRows(rows []model.EnrichedDelivery, keep func(*model.EnrichedDelivery) bool) []model.EnrichedDelivery {
	var out []model.EnrichedDelivery
	for i := range rows {
		if keep(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}
