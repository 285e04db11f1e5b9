// Package store persists curricula in a SQLite database so repeated analysis
// runs do not have to re-parse the source dataset.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the curricula store.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS universities (
    name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS careers (
    id TEXT PRIMARY KEY,
    university TEXT NOT NULL REFERENCES universities(name) ON DELETE CASCADE,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE (university, name)
);
CREATE INDEX IF NOT EXISTS idx_careers_university ON careers(university);

CREATE TABLE IF NOT EXISTS subjects (
    career_id TEXT NOT NULL REFERENCES careers(id) ON DELETE CASCADE,
    semester INTEGER NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (career_id, semester, position)
);
CREATE INDEX IF NOT EXISTS idx_subjects_career ON subjects(career_id);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// InitSchema creates or migrates the database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	currentVersion, err := getSchemaVersion(ctx, db)
	if err != nil {
		// No version table yet, create fresh schema.
		if err := createSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	}

	if currentVersion < SchemaVersion {
		return fmt.Errorf("schema version %d is older than %d and no migration exists",
			currentVersion, SchemaVersion)
	}
	return nil
}

func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, SchemaVersion)
	return err
}
