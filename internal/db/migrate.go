package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id         TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		text       TEXT NOT NULL,
		source     TEXT NOT NULL DEFAULT '',
		outcome    TEXT NOT NULL,
		asked_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_asked_at ON questions(asked_at)`,
}

// Migrate runs all schema migrations. Statements are idempotent and run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
