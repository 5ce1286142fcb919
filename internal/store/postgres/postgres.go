// Package postgres mirrors built feature rows into PostgreSQL via pgx.
package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pable/go-nhl-features/internal/features"
	"github.com/pable/go-nhl-features/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Row is one game to store.
type Row struct {
	Summary model.GameSummary
	Record  features.Record
}

// Store writes feature rows to PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn, pings, and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: apply schema: %w", err)
	}
	return nil
}

// SaveRows upserts rows in one transaction. Each game's previous features
// are replaced.
func (s *Store) SaveRows(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	queued := queueRows(batch, rows)

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("postgres: save batch item %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("postgres: close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

const (
	upsertGame = `
		INSERT INTO games (game_id, source_hash, home_team_id, away_team_id, event_count, options, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (game_id) DO UPDATE SET
			source_hash = EXCLUDED.source_hash,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			event_count = EXCLUDED.event_count,
			options = EXCLUDED.options,
			updated_at = NOW()`
	deleteFeatures = `DELETE FROM game_features WHERE game_id = $1`
	insertFeature  = `
		INSERT INTO game_features (game_id, ordinal, name, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id, name) DO UPDATE SET ordinal = EXCLUDED.ordinal, value = EXCLUDED.value`
)

// queueRows queues every statement for rows and returns how many were queued.
func queueRows(batch *pgx.Batch, rows []Row) int {
	for _, r := range rows {
		sm := r.Summary
		batch.Queue(upsertGame, sm.GameID, sm.SourceHash, sm.HomeTeamID, sm.AwayTeamID, sm.EventCount, sm.Options)
		batch.Queue(deleteFeatures, sm.GameID)
		for i, name := range r.Record.Names() {
			batch.Queue(insertFeature, sm.GameID, i, name, r.Record.Value(name))
		}
	}
	return batch.Len()
}

// FeatureValue reads back one stored value.
func (s *Store) FeatureValue(ctx context.Context, gameID, name string) (float64, error) {
	var v float64
	err := s.pool.QueryRow(ctx,
		"SELECT value FROM game_features WHERE game_id = $1 AND name = $2", gameID, name).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("postgres: get feature %s/%s: %w", gameID, name, err)
	}
	return v, nil
}
