package aggregator

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/model"
)

const (
	csk  = "Chennai Super Kings"
	mi   = "Mumbai Indians"
	rcb  = "Royal Challengers Bangalore"
	pbks = "Punjab Kings"
)

// ---- helpers ----

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func ball(matchID int, batter, bowler, battingTeam string, batsmanRun int) model.Delivery {
	return model.Delivery{
		ID: matchID, Innings: 1, Batter: batter, Bowler: bowler,
		BatsmanRun: batsmanRun, TotalRun: batsmanRun, BattingTeam: battingTeam,
	}
}

func wicket(matchID int, batter, bowler, battingTeam string, kind model.DismissalKind) model.Delivery {
	d := ball(matchID, batter, bowler, battingTeam, 0)
	d.IsWicketDelivery = true
	d.PlayerOut = batter
	d.Kind = kind
	return d
}

func enrich(matches []model.Match, deliveries []model.Delivery) []model.EnrichedDelivery {
	return dataset.Build(matches, deliveries).Regulation()
}

// ---- teams ----

func teamFixture() []model.Match {
	return []model.Match{
		{ID: 1, Season: "2019", MatchNumber: "1", Team1: csk, Team2: rcb, WinningTeam: csk},
		{ID: 2, Season: "2019", MatchNumber: "12", Team1: mi, Team2: csk, WinningTeam: mi},
		{ID: 3, Season: "2019", MatchNumber: "Final", Team1: mi, Team2: csk, WinningTeam: mi},
		{ID: 4, Season: "2020", MatchNumber: "7", Team1: csk, Team2: mi},
		{ID: 5, Season: "2018", MatchNumber: "Final", Team1: csk, Team2: "Sunrisers Hyderabad", WinningTeam: csk},
		{ID: 6, Season: "2020", MatchNumber: "20", Team1: csk, Team2: mi, WinningTeam: csk},
	}
}

func TestSeasonsFirstSeenOrder(t *testing.T) {
	got := Seasons(teamFixture())
	want := []string{"2019", "2020", "2018"}
	if len(got) != len(want) {
		t.Fatalf("Seasons = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Seasons[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTeamsSortedDistinct(t *testing.T) {
	got := Teams(teamFixture())
	want := []string{csk, mi, rcb, "Sunrisers Hyderabad"}
	if len(got) != len(want) {
		t.Fatalf("Teams = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Teams[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHeadToHead(t *testing.T) {
	h := HeadToHead(teamFixture(), csk, mi)
	if h.TotalMatches != 4 || h.WinsA != 1 || h.WinsB != 2 || h.Draws != 1 {
		t.Errorf("HeadToHead = %+v", h)
	}
	if h.WinsA+h.WinsB+h.Draws != h.TotalMatches {
		t.Errorf("wins + draws != total: %+v", h)
	}
}

func TestHeadToHeadSymmetric(t *testing.T) {
	matches := teamFixture()
	ab := HeadToHead(matches, csk, mi)
	ba := HeadToHead(matches, mi, csk)
	if ab.Swap() != ba {
		t.Errorf("HeadToHead not symmetric: %+v vs %+v", ab, ba)
	}
}

func TestHeadToHeadNeverMet(t *testing.T) {
	h := HeadToHead(teamFixture(), rcb, "Sunrisers Hyderabad")
	if h != (model.HeadToHead{TeamA: rcb, TeamB: "Sunrisers Hyderabad"}) {
		t.Errorf("expected all zeros, got %+v", h)
	}
}

func TestTeamRecord(t *testing.T) {
	r := TeamRecordFor(teamFixture(), csk)
	want := model.TeamRecord{MatchesPlayed: 6, Won: 3, Loss: 2, NoResult: 1, Title: 1}
	if r != want {
		t.Errorf("TeamRecordFor(csk) = %+v, want %+v", r, want)
	}
	if r.Won+r.Loss+r.NoResult != r.MatchesPlayed {
		t.Errorf("won + loss + noResult != played: %+v", r)
	}

	r = TeamRecordFor(teamFixture(), mi)
	if r.Title != 1 || r.Won != 2 || r.Loss != 1 || r.NoResult != 1 {
		t.Errorf("TeamRecordFor(mi) = %+v", r)
	}

	if r := TeamRecordFor(teamFixture(), "Kochi Tuskers Kerala"); r != (model.TeamRecord{}) {
		t.Errorf("unknown team should be all zeros, got %+v", r)
	}
}

// ---- batting ----

func TestBattingNotOutScenario(t *testing.T) {
	matches := []model.Match{{ID: 10, Team1: csk, Team2: mi}}
	var deliveries []model.Delivery
	for _, runs := range []int{4, 1, 6, 0, 1} {
		deliveries = append(deliveries, ball(10, "RD Gaikwad", "JJ Bumrah", csk, runs))
	}

	r := Batting("RD Gaikwad", enrich(matches, deliveries))
	if r == nil {
		t.Fatal("expected a record")
	}
	if r.Runs != 12 || r.Fours != 1 || r.Sixes != 1 || r.BallsFaced != 5 {
		t.Errorf("unexpected counts %+v", r)
	}
	if r.Innings != 1 || r.NotOut != 1 || r.Dismissals != 0 {
		t.Errorf("unexpected innings %+v", r)
	}
	if !r.Average.IsInf() {
		t.Errorf("not-out average should be +Inf, got %v", float64(r.Average))
	}
	if !approxEqual(float64(r.StrikeRate), 240, 1e-9) {
		t.Errorf("StrikeRate = %v, want 240", float64(r.StrikeRate))
	}
}

func TestBattingMilestonesAndDismissals(t *testing.T) {
	matches := []model.Match{
		{ID: 1, Team1: csk, Team2: mi, PlayerOfMatch: "F du Plessis"},
		{ID: 2, Team1: rcb, Team2: csk},
		{ID: 3, Team1: csk, Team2: rcb},
	}
	var deliveries []model.Delivery
	// 100 in match 1, 54 in match 2, 49 in match 3.
	for i := 0; i < 25; i++ {
		deliveries = append(deliveries, ball(1, "F du Plessis", "TA Boult", csk, 4))
	}
	for i := 0; i < 9; i++ {
		deliveries = append(deliveries, ball(2, "F du Plessis", "YS Chahal", csk, 6))
	}
	for i := 0; i < 49; i++ {
		deliveries = append(deliveries, ball(3, "F du Plessis", "Mohammed Siraj", csk, 1))
	}
	deliveries = append(deliveries,
		wicket(2, "F du Plessis", "YS Chahal", csk, model.DismissalStumped),
		wicket(3, "F du Plessis", "Mohammed Siraj", csk, model.DismissalRunOut),
	)
	wide := ball(3, "F du Plessis", "Mohammed Siraj", csk, 0)
	wide.ExtraType = model.ExtraWides
	wide.TotalRun = 1
	deliveries = append(deliveries, wide)

	r := Batting("F du Plessis", enrich(matches, deliveries))
	if r == nil {
		t.Fatal("expected a record")
	}
	if r.Runs != 203 {
		t.Errorf("Runs = %d, want 203", r.Runs)
	}
	if r.Hundreds != 1 || r.Fifties != 1 {
		t.Errorf("hundreds %d fifties %d, want 1 and 1", r.Hundreds, r.Fifties)
	}
	if r.Fifties+r.Hundreds > r.Innings {
		t.Errorf("milestones exceed innings: %+v", r)
	}
	if r.Innings != 3 || r.Dismissals != 2 || r.NotOut != 1 {
		t.Errorf("unexpected innings/dismissals %+v", r)
	}
	if r.BallsFaced != 25+9+49+2 {
		t.Errorf("BallsFaced = %d, wide must not count", r.BallsFaced)
	}
	if !approxEqual(float64(r.Average), 101.5, 1e-9) {
		t.Errorf("Average = %v, want 101.5", float64(r.Average))
	}
	if r.ManOfMatch != 1 {
		t.Errorf("ManOfMatch = %d, want 1", r.ManOfMatch)
	}
}

func TestBattingCountsBoundariesOffTheBat(t *testing.T) {
	matches := []model.Match{{ID: 1, Team1: csk, Team2: mi}}
	d := ball(1, "MS Dhoni", "JJ Bumrah", csk, 4)
	d.NonBoundary = true
	r := Batting("MS Dhoni", enrich(matches, []model.Delivery{d}))
	if r == nil || r.Fours != 1 {
		t.Errorf("batting fours should ignore non_boundary: %+v", r)
	}
}

func TestBattingUnknownPlayer(t *testing.T) {
	matches := []model.Match{{ID: 1, Team1: csk, Team2: mi}}
	rows := enrich(matches, []model.Delivery{ball(1, "MS Dhoni", "JJ Bumrah", csk, 1)})
	if r := Batting("Nobody", rows); r != nil {
		t.Errorf("expected nil for unknown player, got %+v", r)
	}
	if r := Batting("", rows); r != nil {
		t.Errorf("expected nil for empty name, got %+v", r)
	}
	if r := Batting("MS Dhoni", nil); r != nil {
		t.Errorf("expected nil over empty rows, got %+v", r)
	}
}

func TestBattingDismissedWithoutFacing(t *testing.T) {
	// Run out at the non-striker's end.
	matches := []model.Match{{ID: 1, Team1: csk, Team2: mi}}
	d := ball(1, "RA Jadeja", "JJ Bumrah", csk, 0)
	d.IsWicketDelivery = true
	d.PlayerOut = "MS Dhoni"
	d.Kind = model.DismissalRunOut

	r := Batting("MS Dhoni", enrich(matches, []model.Delivery{d}))
	if r == nil {
		t.Fatal("a dismissed player has a record")
	}
	if r.Dismissals != 1 || r.BallsFaced != 0 || r.Runs != 0 {
		t.Errorf("unexpected record %+v", r)
	}
}

// ---- bowling ----

func bowlingScenario() ([]model.Match, []model.Delivery) {
	matches := []model.Match{{ID: 20, Team1: mi, Team2: csk, PlayerOfMatch: "JJ Bumrah"}}
	var deliveries []model.Delivery
	for _, runs := range []int{1, 4, 0, 6, 1} {
		deliveries = append(deliveries, ball(20, "MS Dhoni", "JJ Bumrah", csk, runs))
	}
	deliveries[2] = wicket(20, "MS Dhoni", "JJ Bumrah", csk, model.DismissalBowled)
	return matches, deliveries
}

func TestBowlingScenario(t *testing.T) {
	matches, deliveries := bowlingScenario()
	r := Bowling("JJ Bumrah", enrich(matches, deliveries))
	if r == nil {
		t.Fatal("expected a record")
	}
	if r.Wickets != 1 || r.RunsConceded != 12 || r.LegalBalls != 5 || r.Innings != 1 {
		t.Errorf("unexpected counts %+v", r)
	}
	if !approxEqual(float64(r.Economy), 14.4, 1e-9) {
		t.Errorf("Economy = %v, want 14.4", float64(r.Economy))
	}
	if !approxEqual(float64(r.Average), 12, 1e-9) {
		t.Errorf("Average = %v, want 12", float64(r.Average))
	}
	if !approxEqual(float64(r.StrikeRate), 500, 1e-9) {
		t.Errorf("StrikeRate = %v, want 500", float64(r.StrikeRate))
	}
	if r.BestFigure == nil || *r.BestFigure != "1/12" {
		t.Errorf("BestFigure = %v, want 1/12", r.BestFigure)
	}
	if r.Fours != 1 || r.Sixes != 1 || r.ManOfMatch != 1 {
		t.Errorf("unexpected fours/sixes/mom %+v", r)
	}
}

func TestBowlingZeroWickets(t *testing.T) {
	matches := []model.Match{{ID: 1, Team1: mi, Team2: csk}}
	deliveries := []model.Delivery{
		ball(1, "MS Dhoni", "JJ Bumrah", csk, 2),
		wicket(1, "MS Dhoni", "JJ Bumrah", csk, model.DismissalRunOut),
	}
	r := Bowling("JJ Bumrah", enrich(matches, deliveries))
	if r == nil {
		t.Fatal("expected a record")
	}
	if r.Wickets != 0 {
		t.Errorf("run out credited to bowler: %+v", r)
	}
	if !r.Average.IsInf() {
		t.Errorf("Average = %v, want +Inf", float64(r.Average))
	}
	if !r.StrikeRate.IsNaN() {
		t.Errorf("StrikeRate = %v, want NaN", float64(r.StrikeRate))
	}
	if r.BestFigure == nil || *r.BestFigure != "0/2" {
		t.Errorf("BestFigure = %v, want 0/2", r.BestFigure)
	}
}

func TestBowlingExtras(t *testing.T) {
	matches := []model.Match{{ID: 1, Team1: mi, Team2: csk}}
	wide := ball(1, "MS Dhoni", "JJ Bumrah", csk, 0)
	wide.ExtraType, wide.ExtrasRun, wide.TotalRun = model.ExtraWides, 1, 1
	noball := ball(1, "MS Dhoni", "JJ Bumrah", csk, 2)
	noball.ExtraType, noball.ExtrasRun, noball.TotalRun = model.ExtraNoBalls, 1, 3
	legbye := ball(1, "MS Dhoni", "JJ Bumrah", csk, 0)
	legbye.ExtraType, legbye.ExtrasRun, legbye.TotalRun = model.ExtraLegByes, 4, 4
	overthrow := ball(1, "MS Dhoni", "JJ Bumrah", csk, 4)
	overthrow.NonBoundary = true

	r := Bowling("JJ Bumrah", enrich(matches, []model.Delivery{wide, noball, legbye, overthrow}))
	if r == nil {
		t.Fatal("expected a record")
	}
	if r.RunsConceded != 1+3+0+4 {
		t.Errorf("RunsConceded = %d, want 8", r.RunsConceded)
	}
	if r.LegalBalls != 2 {
		t.Errorf("LegalBalls = %d, want 2", r.LegalBalls)
	}
	if r.Fours != 1 {
		t.Errorf("Fours = %d, overthrow four must not count", r.Fours)
	}
}

func TestBowlingBestFigureAndHauls(t *testing.T) {
	matches := []model.Match{
		{ID: 1, Team1: mi, Team2: csk},
		{ID: 2, Team1: mi, Team2: rcb},
		{ID: 3, Team1: mi, Team2: csk},
	}
	var deliveries []model.Delivery
	// Match 1: 3/20. Match 2: 3/8. Match 3: 1/0.
	deliveries = append(deliveries, ball(1, "x", "SL Malinga", csk, 20))
	for i := 0; i < 3; i++ {
		deliveries = append(deliveries, wicket(1, "x", "SL Malinga", csk, model.DismissalLBW))
	}
	deliveries = append(deliveries, ball(2, "y", "SL Malinga", rcb, 8))
	for i := 0; i < 3; i++ {
		deliveries = append(deliveries, wicket(2, "y", "SL Malinga", rcb, model.DismissalCaught))
	}
	deliveries = append(deliveries, wicket(3, "z", "SL Malinga", csk, model.DismissalHitWicket))

	r := Bowling("SL Malinga", enrich(matches, deliveries))
	if r == nil {
		t.Fatal("expected a record")
	}
	if r.BestFigure == nil || *r.BestFigure != "3/8" {
		t.Errorf("BestFigure = %v, want 3/8", r.BestFigure)
	}
	if r.ThreeWicketHauls != 2 {
		t.Errorf("ThreeWicketHauls = %d, want 2", r.ThreeWicketHauls)
	}
	if r.Innings != 3 || r.Wickets != 7 {
		t.Errorf("unexpected innings/wickets %+v", r)
	}
}

func TestBowlingUnknownPlayer(t *testing.T) {
	matches, deliveries := bowlingScenario()
	if r := Bowling("Nobody", enrich(matches, deliveries)); r != nil {
		t.Errorf("expected nil, got %+v", r)
	}
}

// ---- player reports ----

func reportFixture() *dataset.Dataset {
	matches := []model.Match{
		{ID: 1, Team1: mi, Team2: csk},
		{ID: 2, Team1: rcb, Team2: mi},
		// "Gujarat Titans" only ever appears as Team2.
		{ID: 3, Team2: "Gujarat Titans", Team1: mi},
		// No deliveries were recorded for this match.
		{ID: 4, Team1: pbks, Team2: csk},
	}
	deliveries := []model.Delivery{
		ball(1, "RG Sharma", "DL Chahar", mi, 4),
		ball(2, "RG Sharma", "Mohammed Siraj", mi, 6),
		ball(3, "RG Sharma", "Rashid Khan", mi, 1),
		wicket(1, "MS Dhoni", "JJ Bumrah", csk, model.DismissalBowled),
		ball(2, "V Kohli", "JJ Bumrah", rcb, 2),
	}
	so := ball(1, "RG Sharma", "DL Chahar", mi, 6)
	so.Innings = 3
	deliveries = append(deliveries, so)
	return dataset.Build(matches, deliveries)
}

func TestBattingReportBreakdown(t *testing.T) {
	rep := BattingReportFor(context.Background(), reportFixture(), "RG Sharma")
	if rep.All == nil || rep.All.Runs != 11 {
		t.Fatalf("All = %+v, super over must be excluded", rep.All)
	}
	if len(rep.Against) != 3 {
		t.Fatalf("Against keys = %v, want Team1 universe only", rep.Against)
	}
	if _, ok := rep.Against["Gujarat Titans"]; ok {
		t.Error("a Team2-only team must not appear in the breakdown")
	}
	if rep.Against[rcb] == nil || rep.Against[rcb].Runs != 6 {
		t.Errorf("against RCB = %+v", rep.Against[rcb])
	}
	// MI bowled in the dataset, so the entry is a zero record, not absent.
	zero := rep.Against[mi]
	if zero == nil {
		t.Fatal("against MI is nil, want a zero record")
	}
	if zero.Innings != 0 || zero.Runs != 0 || zero.NotOut != 0 || zero.StrikeRate != 0 || !zero.Average.IsInf() {
		t.Errorf("against MI = %+v, want zero innings with +Inf average", zero)
	}
	if rep.Against[pbks] != nil {
		t.Errorf("against PBKS = %+v, want nil: no deliveries were bowled by them", rep.Against[pbks])
	}
}

func TestBowlingReportBreakdown(t *testing.T) {
	rep := BowlingReportFor(context.Background(), reportFixture(), "JJ Bumrah")
	if rep.All == nil || rep.All.Wickets != 1 || rep.All.RunsConceded != 2 {
		t.Fatalf("All = %+v", rep.All)
	}
	if rep.Against[rcb] == nil || rep.Against[rcb].RunsConceded != 2 {
		t.Errorf("against RCB = %+v", rep.Against[rcb])
	}
	zero := rep.Against[mi]
	if zero == nil {
		t.Fatal("against MI is nil, want a zero record")
	}
	if zero.Innings != 0 || zero.Economy != 0 || !zero.Average.IsInf() || !zero.StrikeRate.IsNaN() {
		t.Errorf("against MI = %+v", zero)
	}
	if zero.BestFigure != nil {
		t.Errorf("zero-innings best figure = %q, want absent", *zero.BestFigure)
	}
	if rep.Against[pbks] != nil {
		t.Errorf("against PBKS = %+v, want nil", rep.Against[pbks])
	}
}

func TestPlayerReportZeroRecordDistinctFromAbsent(t *testing.T) {
	matches := []model.Match{
		{ID: 1, Team1: mi, Team2: csk},
		{ID: 2, Team1: csk, Team2: mi},
	}
	deliveries := []model.Delivery{
		ball(1, "RG Sharma", "DL Chahar", mi, 4),
		ball(2, "MS Dhoni", "JJ Bumrah", csk, 1),
	}
	ds := dataset.Build(matches, deliveries)

	bat, err := json.Marshal(BattingReportFor(context.Background(), ds, "RG Sharma"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var batting struct {
		Against map[string]json.RawMessage `json:"against"`
	}
	if err := json.Unmarshal(bat, &batting); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(batting.Against[mi]) == "null" {
		t.Errorf("batting against MI encoded as null: %s", bat)
	}

	bowl, err := json.Marshal(BowlingReportFor(context.Background(), ds, "JJ Bumrah"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var bowling struct {
		Against map[string]map[string]any `json:"against"`
	}
	if err := json.Unmarshal(bowl, &bowling); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	vsMI := bowling.Against[mi]
	if vsMI == nil {
		t.Fatalf("bowling against MI encoded as null: %s", bowl)
	}
	if vsMI["innings"] != 0.0 || vsMI["average"] != "Infinity" || vsMI["strikeRate"] != "NaN" || vsMI["best_figure"] != nil {
		t.Errorf("bowling against MI = %v", vsMI)
	}
}

func TestPlayerReportUnknownPlayer(t *testing.T) {
	rep := BattingReportFor(context.Background(), reportFixture(), "Nobody")
	if rep.All != nil {
		t.Errorf("All = %+v, want nil", rep.All)
	}
	for team, r := range rep.Against {
		switch team {
		case pbks:
			if r != nil {
				t.Errorf("against %s = %+v, want nil", team, r)
			}
		default:
			if r == nil || r.Innings != 0 || r.Runs != 0 {
				t.Errorf("against %s = %+v, want a zero record", team, r)
			}
		}
	}
}

func TestPlayerReportIdempotent(t *testing.T) {
	ds := reportFixture()
	first, err := json.Marshal(BowlingReportFor(context.Background(), ds, "JJ Bumrah"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, _ := json.Marshal(BowlingReportFor(context.Background(), ds, "JJ Bumrah"))
	if string(first) != string(second) {
		t.Errorf("repeated query differs:\n%s\n%s", first, second)
	}
}

func TestBreakdownRecoversPanics(t *testing.T) {
	out := breakdown(context.Background(), []string{"ok", "bad"}, func(team string) *int {
		if team == "bad" {
			panic("boom")
		}
		n := 1
		return &n
	})
	if out["ok"] == nil || *out["ok"] != 1 {
		t.Errorf("ok entry = %v", out["ok"])
	}
	if v, present := out["bad"]; !present || v != nil {
		t.Errorf("bad entry should be present and nil, got %v (present=%v)", v, present)
	}
}

func TestTeamTrend(t *testing.T) {
	trend := TeamTrend(teamFixture(), mi)
	if len(trend) != 2 {
		t.Fatalf("expected 2 seasons, got %+v", trend)
	}
	if trend[0].Season != "2019" || trend[0].Record.Won != 2 || trend[0].Record.Title != 1 {
		t.Errorf("2019 = %+v", trend[0])
	}
	if trend[1].Season != "2020" || trend[1].Record.NoResult != 1 || trend[1].Record.Loss != 1 {
		t.Errorf("2020 = %+v", trend[1])
	}

	var played int
	for _, s := range TeamTrend(teamFixture(), csk) {
		played += s.Record.MatchesPlayed
	}
	if total := TeamRecordFor(teamFixture(), csk).MatchesPlayed; played != total {
		t.Errorf("seasonal matches %d != overall %d", played, total)
	}
}
