package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Writers queue behind each other instead of failing immediately.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Times are stored as unix seconds; the
// availability counter lives on the equipment row and is guarded by a CHECK
// so a release can never push it past the total.
func (db *DB) RunMigrations() error {
	migration := `
-- Equipment pool
CREATE TABLE IF NOT EXISTS equipment (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    total_quantity INTEGER NOT NULL CHECK(total_quantity > 0),
    available_quantity INTEGER NOT NULL,
    condition TEXT NOT NULL DEFAULT 'good',
    CHECK(available_quantity >= 0 AND available_quantity <= total_quantity)
);

-- Bookings ledger
CREATE TABLE IF NOT EXISTS bookings (
    id TEXT PRIMARY KEY COLLATE NOCASE,
    equipment_id INTEGER NOT NULL,
    club_name TEXT NOT NULL,
    booked_by TEXT NOT NULL,
    contact_handle TEXT NOT NULL,
    start_time INTEGER NOT NULL,
    end_time INTEGER NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('active', 'cancelled', 'returned')),
    created_at INTEGER NOT NULL,
    CHECK(end_time > start_time),
    FOREIGN KEY (equipment_id) REFERENCES equipment(id)
);
CREATE INDEX IF NOT EXISTS idx_bookings_equipment ON bookings(equipment_id, status);
CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);
CREATE INDEX IF NOT EXISTS idx_bookings_club ON bookings(club_name);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
