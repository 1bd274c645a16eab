// Package parser reads the matches and ball-by-ball CSV tables into model rows.
package parser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-ipl-stats/internal/model"
)

// ErrSchema is returned when a table is missing a required column or a cell
// cannot be converted to its column type.
var ErrSchema = errors.New("table schema mismatch")

// Column names of the matches table.
var matchColumns = struct {
	ID, Season, MatchNumber, Team1, Team2, WinningTeam, PlayerOfMatch string
	City, Date, Venue                                                 string
}{
	ID: "ID", Season: "Season", MatchNumber: "MatchNumber",
	Team1: "Team1", Team2: "Team2", WinningTeam: "WinningTeam",
	PlayerOfMatch: "Player_of_Match",
	City:          "City", Date: "Date", Venue: "Venue",
}

// Column names of the deliveries table.
var deliveryColumns = struct {
	ID, Innings, Over, Ball, Batter, Bowler, ExtraType, BatsmanRun, TotalRun string
	NonBoundary, IsWicketDelivery, PlayerOut, Kind, BattingTeam              string
	NonStriker, ExtrasRun, FieldersInvolved                                  string
}{
	ID: "ID", Innings: "innings", Over: "overs", Ball: "ballnumber",
	Batter: "batter", Bowler: "bowler", ExtraType: "extra_type",
	BatsmanRun: "batsman_run", TotalRun: "total_run", NonBoundary: "non_boundary",
	IsWicketDelivery: "isWicketDelivery", PlayerOut: "player_out", Kind: "kind",
	BattingTeam: "BattingTeam",
	NonStriker:  "non-striker", ExtrasRun: "extras_run", FieldersInvolved: "fielders_involved",
}

// MatchRequired lists the columns a matches table must carry.
var MatchRequired = []string{
	matchColumns.ID, matchColumns.Season, matchColumns.MatchNumber,
	matchColumns.Team1, matchColumns.Team2, matchColumns.WinningTeam,
	matchColumns.PlayerOfMatch,
}

// DeliveryRequired lists the columns a deliveries table must carry.
var DeliveryRequired = []string{
	deliveryColumns.ID, deliveryColumns.Innings, deliveryColumns.Over, deliveryColumns.Ball,
	deliveryColumns.Batter, deliveryColumns.Bowler, deliveryColumns.ExtraType,
	deliveryColumns.BatsmanRun, deliveryColumns.TotalRun, deliveryColumns.NonBoundary,
	deliveryColumns.IsWicketDelivery, deliveryColumns.PlayerOut, deliveryColumns.Kind,
	deliveryColumns.BattingTeam,
}

// ParseMatches reads a matches CSV table.
func ParseMatches(r io.Reader) ([]model.Match, error) {
	t, err := newTable(r, MatchRequired)
	if err != nil {
		return nil, fmt.Errorf("matches: %w", err)
	}
	c := matchColumns

	var out []model.Match
	for {
		row, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("matches: %w", err)
		}
		id, err := row.integer(c.ID)
		if err != nil {
			return nil, fmt.Errorf("matches: %w", err)
		}
		out = append(out, model.Match{
			ID:            id,
			Season:        row.text(c.Season),
			MatchNumber:   row.text(c.MatchNumber),
			City:          row.nullable(c.City),
			Date:          row.text(c.Date),
			Venue:         row.text(c.Venue),
			Team1:         row.text(c.Team1),
			Team2:         row.text(c.Team2),
			WinningTeam:   row.nullable(c.WinningTeam),
			PlayerOfMatch: row.nullable(c.PlayerOfMatch),
		})
	}
	return out, nil
}

// ParseDeliveries reads a ball-by-ball CSV table.
func ParseDeliveries(r io.Reader) ([]model.Delivery, error) {
	t, err := newTable(r, DeliveryRequired)
	if err != nil {
		return nil, fmt.Errorf("deliveries: %w", err)
	}
	c := deliveryColumns

	var out []model.Delivery
	for {
		row, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("deliveries: %w", err)
		}

		var d model.Delivery
		ints := []struct {
			col string
			dst *int
		}{
			{c.ID, &d.ID}, {c.Innings, &d.Innings}, {c.Over, &d.Over}, {c.Ball, &d.Ball},
			{c.BatsmanRun, &d.BatsmanRun}, {c.TotalRun, &d.TotalRun},
		}
		for _, f := range ints {
			if *f.dst, err = row.integer(f.col); err != nil {
				return nil, fmt.Errorf("deliveries: %w", err)
			}
		}
		if row.has(c.ExtrasRun) {
			if d.ExtrasRun, err = row.integer(c.ExtrasRun); err != nil {
				return nil, fmt.Errorf("deliveries: %w", err)
			}
		}
		if d.NonBoundary, err = row.flag(c.NonBoundary); err != nil {
			return nil, fmt.Errorf("deliveries: %w", err)
		}
		if d.IsWicketDelivery, err = row.flag(c.IsWicketDelivery); err != nil {
			return nil, fmt.Errorf("deliveries: %w", err)
		}

		d.Batter = row.text(c.Batter)
		d.Bowler = row.text(c.Bowler)
		d.NonStriker = row.text(c.NonStriker)
		d.ExtraType = model.ParseExtraType(row.text(c.ExtraType))
		d.PlayerOut = row.nullable(c.PlayerOut)
		d.Kind = model.ParseDismissalKind(row.text(c.Kind))
		d.FieldersInvolved = row.nullable(c.FieldersInvolved)
		d.BattingTeam = row.text(c.BattingTeam)
		out = append(out, d)
	}
	return out, nil
}

// LoadFiles parses both tables from disk concurrently. Cancelling ctx, or a
// failure in either table, stops the other parse at its next read.
func LoadFiles(ctx context.Context, matchesPath, deliveriesPath string) ([]model.Match, []model.Delivery, error) {
	var (
		matches    []model.Match
		deliveries []model.Delivery
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = parseFile(gctx, matchesPath, ParseMatches)
		return err
	})
	g.Go(func() error {
		var err error
		deliveries, err = parseFile(gctx, deliveriesPath, ParseDeliveries)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return matches, deliveries, nil
}

func parseFile[T any](ctx context.Context, path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parse(ctxReader{ctx: ctx, r: f})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// ctxReader fails reads once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// ---- header-indexed CSV reader ----

type table struct {
	r      *csv.Reader
	header map[string]int
	line   int
}

func newTable(r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty table", ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := make(map[string]int, len(head))
	for i, name := range head {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := header[name]; !dup {
			header[name] = i
		}
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrSchema, col)
		}
	}
	return &table{r: cr, header: header, line: 1}, nil
}

func (t *table) next() (record, error) {
	rec, err := t.r.Read()
	if err != nil {
		if err == io.EOF {
			return record{}, io.EOF
		}
		return record{}, fmt.Errorf("line %d: %w", t.line+1, err)
	}
	t.line++
	return record{t: t, cells: rec}, nil
}

type record struct {
	t     *table
	cells []string
}

func (r record) has(col string) bool {
	_, ok := r.t.header[col]
	return ok
}

func (r record) text(col string) string {
	i, ok := r.t.header[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// nullable returns "" for the CSV null markers.
func (r record) nullable(col string) string {
	v := r.text(col)
	if v == "NA" || v == "NaN" {
		return ""
	}
	return v
}

func (r record) integer(col string) (int, error) {
	v := r.text(col)
	n, err := strconv.Atoi(v)
	if err != nil {
		// Some exports write integral columns as floats ("1.0").
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("%w: line %d: column %q: invalid integer %q", ErrSchema, r.t.line, col, v)
		}
		n = int(f)
	}
	return n, nil
}

func (r record) flag(col string) (bool, error) {
	n, err := r.integer(col)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
