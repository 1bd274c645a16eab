package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// JSON sentinels for values strict JSON cannot represent.
const (
	InfinitySentinel = "Infinity"
	NaNSentinel      = "NaN"
)

// Stat is a derived rate or average. It may legitimately be +Inf or NaN
// (see BattingRecord.Average and BowlingRecord.StrikeRate) and encodes those
// as the strings "Infinity" and "NaN".
type Stat float64

// IsInf reports whether s is positive infinity.
func (s Stat) IsInf() bool { return math.IsInf(float64(s), 1) }

// IsNaN reports whether s is undefined.
func (s Stat) IsNaN() bool { return math.IsNaN(float64(s)) }

func (s Stat) MarshalJSON() ([]byte, error) {
	f := float64(s)
	switch {
	case math.IsNaN(f):
		return []byte(`"` + NaNSentinel + `"`), nil
	case math.IsInf(f, 1):
		return []byte(`"` + InfinitySentinel + `"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-` + InfinitySentinel + `"`), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

func (s *Stat) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		switch text {
		case InfinitySentinel:
			*s = Stat(math.Inf(1))
		case "-" + InfinitySentinel:
			*s = Stat(math.Inf(-1))
		default:
			*s = Stat(math.NaN())
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}

// BattingRecord aggregates a batter's regulation-innings deliveries.
type BattingRecord struct {
	Innings    int  `json:"innings"`
	Runs       int  `json:"runs"`
	Fours      int  `json:"fours"`
	Sixes      int  `json:"sixes"`
	Average    Stat `json:"avg"`
	StrikeRate Stat `json:"strikeRate"`
	Fifties    int  `json:"fifties"`
	Hundreds   int  `json:"hundreds"`
	NotOut     int  `json:"notOut"`
	ManOfMatch int  `json:"mom"`
	BallsFaced int  `json:"ballsFaced"`
	Dismissals int  `json:"dismissals"`
}

// BowlingRecord aggregates a bowler's regulation-innings deliveries.
type BowlingRecord struct {
	Innings          int     `json:"innings"`
	Wickets          int     `json:"wicket"`
	RunsConceded     int     `json:"runsConceded"`
	LegalBalls       int     `json:"balls"`
	Economy          Stat    `json:"economy"`
	Average          Stat    `json:"average"`
	StrikeRate       Stat    `json:"strikeRate"`
	Fours            int     `json:"fours"`
	Sixes            int     `json:"sixes"`
	BestFigure       *string `json:"best_figure"`
	ThreeWicketHauls int     `json:"3+W"`
	ManOfMatch       int     `json:"mom"`
}

// MarshalJSON adds the legacy "avg" alias of Average.
func (r BowlingRecord) MarshalJSON() ([]byte, error) {
	type plain BowlingRecord
	return json.Marshal(struct {
		plain
		Avg Stat `json:"avg"`
	}{plain(r), r.Average})
}

// PlayerReport is a player's overall record plus one entry per opponent.
// A nil record means the player has no deliveries in that slice.
type PlayerReport[R any] struct {
	All     *R            `json:"all"`
	Against map[string]*R `json:"against"`
}

// TeamRecord summarises every match a team played.
type TeamRecord struct {
	MatchesPlayed int `json:"matchesplayed"`
	Won           int `json:"won"`
	Loss          int `json:"loss"`
	NoResult      int `json:"noResult"`
	Title         int `json:"title"`
}

// Fixed keys of the head-to-head JSON object.
const (
	TotalMatchesKey = "totalMatches"
	DrawsKey        = "draws"
)

// ErrReservedTeamName is returned when a team name collides with a fixed
// head-to-head key and the object would carry a duplicate key.
var ErrReservedTeamName = errors.New("team name collides with a head-to-head key")

// IsReservedTeamName reports whether name cannot be used as a head-to-head key.
func IsReservedTeamName(name string) bool {
	return name == TotalMatchesKey || name == DrawsKey
}

// HeadToHead summarises the matches between two teams. It encodes with the
// team names as keys: {"totalMatches":n,"<TeamA>":a,"<TeamB>":b,"draws":d}.
// A team named like a fixed key fails with ErrReservedTeamName.
type HeadToHead struct {
	TeamA, TeamB string
	TotalMatches int
	WinsA, WinsB int
	Draws        int
}

// Swap returns the same result seen from TeamB's side.
func (h HeadToHead) Swap() HeadToHead {
	return HeadToHead{
		TeamA:        h.TeamB,
		TeamB:        h.TeamA,
		TotalMatches: h.TotalMatches,
		WinsA:        h.WinsB,
		WinsB:        h.WinsA,
		Draws:        h.Draws,
	}
}

func (h HeadToHead) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField := func(key string, v int) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(v))
		return nil
	}
	for _, team := range []string{h.TeamA, h.TeamB} {
		if IsReservedTeamName(team) {
			return nil, fmt.Errorf("%w: %q", ErrReservedTeamName, team)
		}
	}
	if err := writeField(TotalMatchesKey, h.TotalMatches); err != nil {
		return nil, err
	}
	if err := writeField(h.TeamA, h.WinsA); err != nil {
		return nil, err
	}
	if h.TeamB != h.TeamA {
		if err := writeField(h.TeamB, h.WinsB); err != nil {
			return nil, err
		}
	}
	if err := writeField(DrawsKey, h.Draws); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
