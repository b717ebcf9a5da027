package store

import "fmt"

// migrate runs database migrations.
func (s *Store) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS guides (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			capacity   INTEGER NOT NULL DEFAULT 0,
			outsourced INTEGER NOT NULL DEFAULT 0,
			contact    TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS bookings (
			id              TEXT PRIMARY KEY,
			trip_date       DATE NOT NULL,
			customer_name   TEXT NOT NULL,
			adults          INTEGER NOT NULL DEFAULT 0,
			children        INTEGER NOT NULL DEFAULT 0,
			infants         INTEGER NOT NULL DEFAULT 0,
			pickup_location TEXT NOT NULL DEFAULT '',
			pickup_zone     TEXT NOT NULL DEFAULT '',
			pickup_time     TIME NOT NULL,
			tour_id         TEXT NOT NULL,
			tour_name       TEXT NOT NULL DEFAULT '',
			duration_min    INTEGER NOT NULL,
			mode            TEXT NOT NULL CHECK(mode IN ('shared', 'charter')),
			guide_id        TEXT REFERENCES guides(id)
		);

		CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(trip_date);
		CREATE INDEX IF NOT EXISTS idx_bookings_guide ON bookings(guide_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating dispatch tables: %w", err)
	}

	return nil
}
