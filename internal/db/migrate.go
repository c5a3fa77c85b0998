package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Amounts are stored as decimal TEXT so that values round-trip exactly.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS saved_settings (
		scope            TEXT PRIMARY KEY,
		merchant_onboard INTEGER NOT NULL DEFAULT 0,
		total_parcels    INTEGER NOT NULL DEFAULT 0,
		total_revenue    TEXT NOT NULL DEFAULT '0',
		commission_type  TEXT NOT NULL
		                 CHECK(commission_type IN ('FLAT','PERCENTAGE','TIERED')),
		commission_value TEXT NOT NULL DEFAULT '0',
		saved_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS saved_tiers (
		scope      TEXT NOT NULL REFERENCES saved_settings(scope) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		id         TEXT NOT NULL,
		from_value TEXT NOT NULL DEFAULT '0',
		to_value   TEXT NOT NULL DEFAULT '0',
		rate       TEXT NOT NULL DEFAULT '0',
		type       TEXT NOT NULL CHECK(type IN ('FLAT','PERCENTAGE')),
		PRIMARY KEY (scope, position)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_tiers_id ON saved_tiers(scope, id)`,

	`ALTER TABLE saved_settings ADD COLUMN save_count INTEGER NOT NULL DEFAULT 0`,
}
