package model

// FinalMatchNumber is the MatchNumber label of a season's final.
const FinalMatchNumber = "Final"

// ---- Raw rows produced by the table loader ----

// Match is one row of the matches table.
type Match struct {
	ID            int
	Season        string
	MatchNumber   string // numeric label, or "Final", "Qualifier 1", ...
	City          string
	Date          string
	Venue         string
	Team1, Team2  string
	WinningTeam   string // "" when the match had no result
	PlayerOfMatch string
}

// HasResult reports whether a winner was recorded.
func (m *Match) HasResult() bool {
	return m.WinningTeam != ""
}

// IsFinal reports whether the match was a season final.
func (m *Match) IsFinal() bool {
	return m.MatchNumber == FinalMatchNumber
}

// Involves reports whether team played in the match.
func (m *Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// Opponent returns the other side of the match, or "" if team did not play.
func (m *Match) Opponent(team string) string {
	switch team {
	case m.Team1:
		return m.Team2
	case m.Team2:
		return m.Team1
	default:
		return ""
	}
}

// Delivery is one row of the ball-by-ball table.
type Delivery struct {
	ID         int // match ID
	Innings    int // 1, 2; >2 for super overs
	Over       int
	Ball       int
	Batter     string
	Bowler     string
	NonStriker string

	ExtraType  ExtraType
	BatsmanRun int
	ExtrasRun  int
	TotalRun   int

	NonBoundary      bool // boundary runs that did not come off the bat (overthrows, byes)
	IsWicketDelivery bool
	PlayerOut        string // "" when no dismissal
	Kind             DismissalKind
	FieldersInvolved string

	BattingTeam string
}

// IsRegulation reports whether the delivery belongs to one of the two standard innings.
func (d *Delivery) IsRegulation() bool {
	return d.Innings == 1 || d.Innings == 2
}

// ---- Derived rows produced by the enricher ----

// EnrichedDelivery is a Delivery joined to its Match, with the per-delivery
// facts the aggregates need.
type EnrichedDelivery struct {
	Delivery

	BowlingTeam   string // "" when BattingTeam matched neither side of the match
	PlayerOfMatch string

	IsBowlerWicket int // 1 when the dismissal is credited to the bowler
	BowlerRun      int // runs charged to the bowler
}

// Enrich derives the bowler-facing columns of d within match m.
func Enrich(d Delivery, m *Match) EnrichedDelivery {
	return EnrichedDelivery{
		Delivery:       d,
		BowlingTeam:    m.Opponent(d.BattingTeam),
		PlayerOfMatch:  m.PlayerOfMatch,
		IsBowlerWicket: BowlerWicket(d.Kind, d.IsWicketDelivery),
		BowlerRun:      BowlerRun(d.ExtraType, d.TotalRun),
	}
}

// BowlerWicket returns the wicket credit for a delivery.
func BowlerWicket(kind DismissalKind, isWicket bool) int {
	if isWicket && kind.CreditedToBowler() {
		return 1
	}
	return 0
}

// BowlerRun returns the runs charged to the bowler for a delivery.
func BowlerRun(extra ExtraType, totalRun int) int {
	if !extra.ChargedToBowler() {
		return 0
	}
	return totalRun
}
