package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{"equipment", "bookings"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestEquipmentConstraints verifies the availability CHECK constraints
func TestEquipmentConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO equipment (name, total_quantity, available_quantity) VALUES (?, ?, ?)`,
		"Projector", 2, 2)
	require.NoError(t, err)

	// Availability can never exceed the total
	_, err = db.ExecContext(ctx,
		`INSERT INTO equipment (name, total_quantity, available_quantity) VALUES (?, ?, ?)`,
		"Laptop", 2, 3)
	require.Error(t, err, "should fail when available exceeds total")

	// Nor go negative
	_, err = db.ExecContext(ctx,
		`UPDATE equipment SET available_quantity = -1 WHERE name = 'Projector'`)
	require.Error(t, err, "should fail on negative availability")

	// Names are unique regardless of case
	_, err = db.ExecContext(ctx,
		`INSERT INTO equipment (name, total_quantity, available_quantity) VALUES (?, ?, ?)`,
		"projector", 1, 1)
	require.Error(t, err, "should fail on case-insensitive duplicate name")
}

// TestBookingConstraints verifies booking status and interval constraints
func TestBookingConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO equipment (id, name, total_quantity, available_quantity) VALUES (1, 'Projector', 2, 2)`)
	require.NoError(t, err)

	// Invalid status rejected
	_, err = db.ExecContext(ctx,
		`INSERT INTO bookings (id, equipment_id, club_name, booked_by, contact_handle,
		                       start_time, end_time, status, created_at)
		 VALUES ('B001', 1, 'Tech Club', 'Sam', '@sam', 100, 200, 'pending', 50)`)
	require.Error(t, err, "should fail with invalid status")

	// Empty intervals rejected
	_, err = db.ExecContext(ctx,
		`INSERT INTO bookings (id, equipment_id, club_name, booked_by, contact_handle,
		                       start_time, end_time, status, created_at)
		 VALUES ('B001', 1, 'Tech Club', 'Sam', '@sam', 200, 200, 'active', 50)`)
	require.Error(t, err, "should fail when end does not follow start")

	// Unknown equipment rejected
	_, err = db.ExecContext(ctx,
		`INSERT INTO bookings (id, equipment_id, club_name, booked_by, contact_handle,
		                       start_time, end_time, status, created_at)
		 VALUES ('B001', 99, 'Tech Club', 'Sam', '@sam', 100, 200, 'active', 50)`)
	require.Error(t, err, "should fail with unknown equipment_id")
}

// TestSeed verifies the starter catalog loads and reseeding is a no-op
func TestSeed(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Seed(ctx))

	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM equipment`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 8, count)

	// Booking a unit then reseeding must not restore the quantity
	_, err = db.ExecContext(ctx,
		`UPDATE equipment SET available_quantity = available_quantity - 1 WHERE name = 'Projector'`)
	require.NoError(t, err)

	require.NoError(t, db.Seed(ctx))

	var available int
	err = db.QueryRowContext(ctx,
		`SELECT available_quantity FROM equipment WHERE name = 'Projector'`).Scan(&available)
	require.NoError(t, err)
	require.Equal(t, 1, available, "reseed should not touch existing rows")
}
