package booking

import (
	"context"

	"github.com/oncampus/gearbot/internal/domain/equipment"
)

// EquipmentRepository manages equipment persistence.
type EquipmentRepository interface {
	// List returns all equipment ordered alphabetically by name.
	List(ctx context.Context) ([]equipment.Equipment, error)
	// GetByName resolves equipment by case-insensitive exact name match.
	GetByName(ctx context.Context, name string) (*equipment.Equipment, error)
}

// BookingRepository manages booking persistence. Create and Finalize are the
// only mutation paths; each runs its read-check-write sequence inside a
// single transaction so concurrent requests against the same equipment
// cannot interleave between the check and the write.
type BookingRepository interface {
	// GetByID resolves a booking by case-insensitive identifier match.
	GetByID(ctx context.Context, id string) (*Booking, error)
	// ListActiveForEquipment returns active bookings for one piece of
	// equipment, ordered by start time ascending.
	ListActiveForEquipment(ctx context.Context, equipmentID int64) ([]Booking, error)
	// ListActiveByClub returns active bookings whose club name contains the
	// given text (case-insensitive), ordered by start time ascending.
	ListActiveByClub(ctx context.Context, club string) ([]Booking, error)
	// ListAllActive returns every active booking ordered by start time.
	ListAllActive(ctx context.Context) ([]Booking, error)
	// Create atomically re-checks capacity and interval conflicts, assigns
	// the next booking identifier, inserts the booking as active, and
	// decrements the equipment's available quantity. On success the assigned
	// identifier is written back to b.ID. Returns ErrNoUnits, ErrOverlap, or
	// ErrNotFound when the check fails; no state changes in that case.
	Create(ctx context.Context, b *Booking) error
	// Finalize atomically moves an active booking to a terminal status and
	// increments the equipment's available quantity. The returned booking is
	// the record as it stood before the transition (joined with its
	// equipment name). Returns ErrNotFound, or ErrAlreadyFinal together with
	// the record, when no transition happened.
	Finalize(ctx context.Context, id string, to Status) (*Booking, error)
}
