package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the workshop tables if they do not exist yet. The
// municipality_dimensions table is seed data loaded by operations tooling;
// the service only reads it.
func Migrate(ctx context.Context, db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		credits INTEGER NOT NULL,
		purchased_layers TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS purchases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_id TEXT NOT NULL,
		layer_id TEXT NOT NULL,
		cost INTEGER NOT NULL,
		purchased_at TEXT NOT NULL,
		FOREIGN KEY (group_id) REFERENCES groups(id)
	);
	CREATE TABLE IF NOT EXISTS rankings (
		group_id TEXT NOT NULL,
		phase TEXT NOT NULL,
		code TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (group_id, phase, code),
		FOREIGN KEY (group_id) REFERENCES groups(id)
	);
	CREATE TABLE IF NOT EXISTS selected_actions (
		group_id TEXT NOT NULL,
		action_id TEXT NOT NULL,
		PRIMARY KEY (group_id, action_id),
		FOREIGN KEY (group_id) REFERENCES groups(id)
	);
	CREATE TABLE IF NOT EXISTS municipality_dimensions (
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		quadrant TEXT NOT NULL,
		dimension TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (code, dimension)
	);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate workshop schema: %w", err)
	}
	return nil
}
