package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-ipl-stats/internal/model"
)

// Counts holds the stored row count of each table.
type Counts struct {
	Matches    int
	Deliveries int
}

// ImportMatches replaces the stored matches table in a single transaction.
// Rows keep their input order, which LoadMatches reproduces.
func (db *DB) ImportMatches(matches []model.Match) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO matches(
			id, load_order, season, match_number, city, match_date, venue,
			team1, team2, winning_team, player_of_match
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range matches {
		_, err = stmt.Exec(
			m.ID, i, m.Season, m.MatchNumber, m.City, m.Date, m.Venue,
			m.Team1, m.Team2, m.WinningTeam, m.PlayerOfMatch,
		)
		if err != nil {
			return fmt.Errorf("insert match %d: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

// ImportDeliveries replaces the stored deliveries table in a single transaction.
func (db *DB) ImportDeliveries(deliveries []model.Delivery) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM deliveries"); err != nil {
		return fmt.Errorf("clear deliveries: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO deliveries(
			seq, match_id, innings, over_number, ball_number,
			batter, bowler, non_striker,
			extra_type, batsman_run, extras_run, total_run,
			non_boundary, is_wicket_delivery, player_out, kind, fielders_involved,
			batting_team
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, d := range deliveries {
		_, err = stmt.Exec(
			i, d.ID, d.Innings, d.Over, d.Ball,
			d.Batter, d.Bowler, d.NonStriker,
			d.ExtraType.String(), d.BatsmanRun, d.ExtrasRun, d.TotalRun,
			boolInt(d.NonBoundary), boolInt(d.IsWicketDelivery), d.PlayerOut, d.Kind.String(), d.FieldersInvolved,
			d.BattingTeam,
		)
		if err != nil {
			return fmt.Errorf("insert delivery %d/%d.%d: %w", d.ID, d.Over, d.Ball, err)
		}
	}
	return tx.Commit()
}

// LoadMatches returns all stored matches in import order.
func (db *DB) LoadMatches() ([]model.Match, error) {
	rows, err := db.conn.Query(`
		SELECT id, season, match_number, city, match_date, venue,
		       team1, team2, winning_team, player_of_match
		FROM matches ORDER BY load_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.ID, &m.Season, &m.MatchNumber, &m.City, &m.Date, &m.Venue,
			&m.Team1, &m.Team2, &m.WinningTeam, &m.PlayerOfMatch); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// LoadDeliveries returns all stored deliveries in import order.
func (db *DB) LoadDeliveries() ([]model.Delivery, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, innings, over_number, ball_number,
		       batter, bowler, non_striker,
		       extra_type, batsman_run, extras_run, total_run,
		       non_boundary, is_wicket_delivery, player_out, kind, fielders_involved,
		       batting_team
		FROM deliveries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Delivery
	for rows.Next() {
		var d model.Delivery
		var extra, kind string
		var nonBoundary, isWicket int
		if err := rows.Scan(&d.ID, &d.Innings, &d.Over, &d.Ball,
			&d.Batter, &d.Bowler, &d.NonStriker,
			&extra, &d.BatsmanRun, &d.ExtrasRun, &d.TotalRun,
			&nonBoundary, &isWicket, &d.PlayerOut, &kind, &d.FieldersInvolved,
			&d.BattingTeam); err != nil {
			return nil, err
		}
		d.ExtraType = model.ParseExtraType(extra)
		d.Kind = model.ParseDismissalKind(kind)
		d.NonBoundary = nonBoundary != 0
		d.IsWicketDelivery = isWicket != 0
		out = append(out, d)
	}
	return out, rows.Err()
}

// Counts returns the number of stored rows per table.
func (db *DB) Counts() (Counts, error) {
	var c Counts
	if err := db.conn.QueryRow("SELECT COUNT(1) FROM matches").Scan(&c.Matches); err != nil {
		return c, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(1) FROM deliveries").Scan(&c.Deliveries); err != nil {
		return c, err
	}
	return c, nil
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
