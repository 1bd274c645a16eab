// Package dataset joins the matches and ball-by-ball tables into the
// read-only, enriched dataset every query runs against.
package dataset

import (
	"github.com/pable/go-ipl-stats/internal/model"
)

// Stats describes what Build kept and dropped.
type Stats struct {
	Matches            int
	Deliveries         int // enriched deliveries, all innings
	Regulation         int // enriched deliveries in innings 1 and 2
	OrphanDeliveries   int // deliveries whose match ID is unknown
	UnknownBattingTeam int // deliveries whose batting team is neither side of the match
}

// Dataset is built once and never mutated afterwards; it is safe for
// concurrent readers. Accessors return shared slices that callers must not modify.
type Dataset struct {
	matches    []model.Match
	deliveries []model.EnrichedDelivery
	regulation []model.EnrichedDelivery
	opponents  []string
	stats      Stats
}

// Build joins deliveries to matches on ID and derives the bowler-facing
// columns. Deliveries without a matching match row are dropped.
func Build(matches []model.Match, deliveries []model.Delivery) *Dataset {
	byID := make(map[int]*model.Match, len(matches))
	for i := range matches {
		byID[matches[i].ID] = &matches[i]
	}

	ds := &Dataset{
		matches:    matches,
		deliveries: make([]model.EnrichedDelivery, 0, len(deliveries)),
	}
	for _, d := range deliveries {
		m, ok := byID[d.ID]
		if !ok {
			ds.stats.OrphanDeliveries++
			continue
		}
		ed := model.Enrich(d, m)
		if ed.BowlingTeam == "" {
			ds.stats.UnknownBattingTeam++
		}
		ds.deliveries = append(ds.deliveries, ed)
	}

	ds.regulation = make([]model.EnrichedDelivery, 0, len(ds.deliveries))
	for _, d := range ds.deliveries {
		if d.IsRegulation() {
			ds.regulation = append(ds.regulation, d)
		}
	}

	seen := make(map[string]struct{})
	for _, m := range matches {
		if _, ok := seen[m.Team1]; ok {
			continue
		}
		seen[m.Team1] = struct{}{}
		ds.opponents = append(ds.opponents, m.Team1)
	}

	ds.stats.Matches = len(ds.matches)
	ds.stats.Deliveries = len(ds.deliveries)
	ds.stats.Regulation = len(ds.regulation)
	return ds
}

// Matches returns every match row in load order.
func (ds *Dataset) Matches() []model.Match { return ds.matches }

// Deliveries returns every enriched delivery, super overs included.
func (ds *Dataset) Deliveries() []model.EnrichedDelivery { return ds.deliveries }

// Regulation returns the enriched deliveries of innings 1 and 2.
func (ds *Dataset) Regulation() []model.EnrichedDelivery { return ds.regulation }

// OpponentUniverse returns the teams player breakdowns are computed against:
// the distinct Team1 values in first-seen order. This deliberately differs
// from aggregator.Teams, which also consults Team2.
func (ds *Dataset) OpponentUniverse() []string { return ds.opponents }

// Stats returns load counters.
func (ds *Dataset) Stats() Stats { return ds.stats }
