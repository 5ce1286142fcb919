package storage

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB is the local SQLite store of built games: one games row per NHL game id
// and its feature columns in long form in game_features.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the game feature store at path and brings its
// schema up to date.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn: conn}, nil
}

// migrate adds columns that databases created by earlier builds lack.
func migrate(conn *sql.DB) error {
	rows, err := conn.Query("SELECT name FROM pragma_table_info('games')")
	if err != nil {
		return fmt.Errorf("inspect games table: %w", err)
	}
	defer rows.Close()
	hasOptions := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == "options" {
			hasOptions = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()
	if hasOptions {
		return nil
	}
	if _, err := conn.Exec("ALTER TABLE games ADD COLUMN options TEXT NOT NULL DEFAULT ''"); err != nil {
		return fmt.Errorf("add games.options: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
