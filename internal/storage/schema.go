package storage

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	// 1: initial schema
	`
	CREATE TABLE IF NOT EXISTS users (
		id       TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role     TEXT NOT NULL DEFAULT 'user'
	);

	CREATE TABLE IF NOT EXISTS media_items (
		id    TEXT PRIMARY KEY,
		type  TEXT NOT NULL,
		owner TEXT NOT NULL,
		name  TEXT NOT NULL,
		url   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS party_played (
		party_id      TEXT NOT NULL,
		media_item_id TEXT NOT NULL,
		played        INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (party_id, media_item_id)
	);
	`,
}

func (s *Store) EnsureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage: missing database connection")
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		)
	`); err != nil {
		return err
	}

	var version sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		return err
	}

	for i := int(version.Int64); i < len(migrations); i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, i+1); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
