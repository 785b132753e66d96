package storage

import "fmt"

// migrate creates the archive schema if it doesn't exist.
func (d *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	d.logger.Info("database migrations applied")
	return nil
}

var migrations = []string{
	// One row per stop per processed vehicle, across runs.
	`CREATE TABLE IF NOT EXISTS observations (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		date                TEXT,
		route_id            TEXT,
		trip_id             TEXT,
		train_id            TEXT NOT NULL,
		train_type          TEXT,
		station             TEXT NOT NULL,
		position            TEXT NOT NULL,
		scheduled_arrival   INTEGER NOT NULL DEFAULT 0,
		actual_arrival      INTEGER NOT NULL DEFAULT 0,
		arrival_delay_sec   INTEGER NOT NULL DEFAULT 0,
		scheduled_departure INTEGER NOT NULL DEFAULT 0,
		actual_departure    INTEGER NOT NULL DEFAULT 0,
		departure_delay_sec INTEGER NOT NULL DEFAULT 0,
		platform            TEXT,
		cancelled           INTEGER NOT NULL DEFAULT 0,
		captured_at         TEXT NOT NULL
	)`,

	// Indexes for common query patterns
	`CREATE INDEX IF NOT EXISTS idx_observations_train ON observations(train_id)`,
	`CREATE INDEX IF NOT EXISTS idx_observations_date ON observations(date)`,
	`CREATE INDEX IF NOT EXISTS idx_observations_station ON observations(station)`,
}
