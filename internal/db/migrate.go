package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Parent and WBS references carry no foreign keys: a dangling reference is
// an integrity warning, not a load failure, and must round-trip unchanged.
// position is the dataset order; sibling display order follows it.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS wbs_nodes (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		parent_id     TEXT,
		planned_start TEXT,
		planned_end   TEXT,
		actual_start  TEXT,
		actual_end    TEXT,
		position      INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_nodes_parent ON wbs_nodes(parent_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL CHECK(trim(title) != ''),
		status      TEXT NOT NULL,
		wbs_id      TEXT,
		priority    TEXT NOT NULL DEFAULT '',
		due         TEXT,
		description TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_wbs ON tasks(wbs_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
}
