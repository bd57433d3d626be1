package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oncampus/gearbot/internal/domain/booking"
)

// BookingRepository implements booking.BookingRepository for SQLite. Create
// and Finalize run their read-check-write sequence inside one transaction so
// two requests racing for the same equipment serialize at the database.
type BookingRepository struct {
	db *DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	b.id, b.equipment_id, e.name, b.club_name, b.booked_by, b.contact_handle,
	b.start_time, b.end_time, b.status, b.created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var b booking.Booking
	var start, end, created int64
	err := row.Scan(
		&b.ID,
		&b.EquipmentID,
		&b.EquipmentName,
		&b.ClubName,
		&b.BookedBy,
		&b.ContactHandle,
		&start,
		&end,
		&b.Status,
		&created,
	)
	if err != nil {
		return nil, err
	}
	b.StartTime = time.Unix(start, 0)
	b.EndTime = time.Unix(end, 0)
	b.CreatedAt = time.Unix(created, 0)
	return &b, nil
}

// GetByID retrieves a booking by ID. The id column collates NOCASE so b001
// finds B001.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN equipment e ON e.id = b.equipment_id
		WHERE b.id = ?
	`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

// ListActiveForEquipment returns active bookings for one piece of equipment,
// ordered by start time ascending
func (r *BookingRepository) ListActiveForEquipment(ctx context.Context, equipmentID int64) ([]booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN equipment e ON e.id = b.equipment_id
		WHERE b.equipment_id = ? AND b.status = 'active'
		ORDER BY b.start_time ASC
	`
	return r.listBookings(ctx, query, equipmentID)
}

// ListActiveByClub returns active bookings whose club name contains the given
// text, case-insensitively, ordered by start time ascending
func (r *BookingRepository) ListActiveByClub(ctx context.Context, club string) ([]booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN equipment e ON e.id = b.equipment_id
		WHERE b.status = 'active' AND instr(lower(b.club_name), lower(?)) > 0
		ORDER BY b.start_time ASC
	`
	return r.listBookings(ctx, query, club)
}

// ListAllActive returns every active booking ordered by start time ascending
func (r *BookingRepository) ListAllActive(ctx context.Context) ([]booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN equipment e ON e.id = b.equipment_id
		WHERE b.status = 'active'
		ORDER BY b.start_time ASC
	`
	return r.listBookings(ctx, query)
}

func (r *BookingRepository) listBookings(ctx context.Context, query string, args ...any) ([]booking.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}

// Create atomically re-checks capacity and conflicts, assigns the next
// booking ID, inserts the booking, and decrements the equipment's available
// quantity. Any check failure rolls the transaction back untouched.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var available int
	err = tx.QueryRowContext(ctx,
		`SELECT available_quantity FROM equipment WHERE id = ?`,
		b.EquipmentID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check equipment: %w", err)
	}
	if available <= 0 {
		return booking.ErrNoUnits
	}

	// Half-open overlap: existing.start < new.end AND existing.end > new.start.
	var conflicts int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE equipment_id = ? AND status = 'active'
		   AND start_time < ? AND end_time > ?`,
		b.EquipmentID, b.EndTime.Unix(), b.StartTime.Unix()).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("failed to check conflicts: %w", err)
	}
	if conflicts > 0 {
		return booking.ErrOverlap
	}

	// IDs of every booking regardless of status feed the counter, so numbers
	// freed by cancellation are never reissued.
	rows, err := tx.QueryContext(ctx, `SELECT id FROM bookings`)
	if err != nil {
		return fmt.Errorf("failed to list booking ids: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan booking id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate booking ids: %w", err)
	}
	rows.Close()

	id := booking.NextID(ids)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (id, equipment_id, club_name, booked_by, contact_handle,
		                       start_time, end_time, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		b.EquipmentID,
		b.ClubName,
		b.BookedBy,
		b.ContactHandle,
		b.StartTime.Unix(),
		b.EndTime.Unix(),
		b.Status,
		b.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE equipment SET available_quantity = available_quantity - 1 WHERE id = ?`,
		b.EquipmentID)
	if err != nil {
		return fmt.Errorf("failed to decrement availability: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	b.ID = id
	return nil
}

// Finalize atomically moves an active booking into a terminal status and
// releases one unit back to the equipment pool. The returned booking is the
// record as it stood before the transition.
func (r *BookingRepository) Finalize(ctx context.Context, id string, to booking.Status) (*booking.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN equipment e ON e.id = b.equipment_id
		WHERE b.id = ?
	`
	prior, err := scanBooking(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if prior.Status != booking.StatusActive {
		return prior, booking.ErrAlreadyFinal
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = 'active'`,
		to, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE equipment
		 SET available_quantity = min(available_quantity + 1, total_quantity)
		 WHERE id = ?`,
		prior.EquipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to release unit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit finalization: %w", err)
	}

	return prior, nil
}
