package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/pable/go-nhl-features/internal/features"
	"github.com/pable/go-nhl-features/internal/model"
)

// GameExists returns true if the game is stored with the given source hash
// and was extracted with the same options fingerprint.
func (db *DB) GameExists(gameID, sourceHash, options string) (bool, error) {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(1) FROM games
		WHERE game_id = ? AND source_hash = ? AND options = ?`,
		gameID, sourceHash, options).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveGame stores a game's summary and feature record in one transaction,
// replacing anything previously stored for the game.
func (db *DB) SaveGame(summary model.GameSummary, rec features.Record) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM game_features WHERE game_id = ?", summary.GameID); err != nil {
		return fmt.Errorf("clear game_features for %s: %w", summary.GameID, err)
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO games(game_id, source_hash, home_team_id, away_team_id, event_count, options)
		VALUES (?, ?, ?, ?, ?, ?)`,
		summary.GameID, summary.SourceHash, summary.HomeTeamID, summary.AwayTeamID, summary.EventCount, summary.Options,
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", summary.GameID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO game_features(game_id, ordinal, name, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, name := range rec.Names() {
		if _, err := stmt.Exec(summary.GameID, i, name, rec.Value(name)); err != nil {
			return fmt.Errorf("insert game_features %s/%s: %w", summary.GameID, name, err)
		}
	}
	return tx.Commit()
}

// ListGames returns all stored games ordered by game id.
func (db *DB) ListGames() ([]model.GameSummary, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, source_hash, home_team_id, away_team_id, event_count, options
		FROM games ORDER BY game_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameSummary
	for rows.Next() {
		var s model.GameSummary
		if err := rows.Scan(&s.GameID, &s.SourceHash, &s.HomeTeamID, &s.AwayTeamID, &s.EventCount, &s.Options); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetGameByPrefix returns the first game whose id starts with prefix, or nil
// if none matches.
func (db *DB) GetGameByPrefix(prefix string) (*model.GameSummary, error) {
	var s model.GameSummary
	err := db.conn.QueryRow(`
		SELECT game_id, source_hash, home_team_id, away_team_id, event_count, options
		FROM games WHERE game_id LIKE ? || '%' ORDER BY game_id LIMIT 1`, prefix).
		Scan(&s.GameID, &s.SourceHash, &s.HomeTeamID, &s.AwayTeamID, &s.EventCount, &s.Options)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetRecord loads a game's features in their stored column order.
func (db *DB) GetRecord(gameID string) (features.Record, error) {
	rows, err := db.conn.Query(`
		SELECT name, value FROM game_features
		WHERE game_id = ? ORDER BY ordinal`, gameID)
	if err != nil {
		return features.Record{}, err
	}
	defer rows.Close()

	var (
		names  []string
		values []float64
	)
	for rows.Next() {
		var n string
		var v float64
		if err := rows.Scan(&n, &v); err != nil {
			return features.Record{}, err
		}
		names = append(names, n)
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return features.Record{}, err
	}
	return features.NewRecord(gameID, names, values)
}

// AllRecords loads every stored game's features, ordered by game id.
func (db *DB) AllRecords() ([]features.Record, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, name, value FROM game_features
		ORDER BY game_id, ordinal`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out     []features.Record
		current string
		names   []string
		values  []float64
	)
	flush := func() error {
		if current == "" {
			return nil
		}
		r, err := features.NewRecord(current, names, values)
		if err != nil {
			return err
		}
		out = append(out, r)
		names, values = nil, nil
		return nil
	}
	for rows.Next() {
		var id, n string
		var v float64
		if err := rows.Scan(&id, &n, &v); err != nil {
			return nil, err
		}
		if id != current {
			if err := flush(); err != nil {
				return nil, err
			}
			current = id
		}
		names = append(names, n)
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryRaw runs an arbitrary query and returns column names and string
// rows. NULLs render as "NULL".
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
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatCell(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
