package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/oncampus/gearbot/internal/domain/equipment"
)

// Service is the allocation engine. Every entry point returns a Result whose
// Text is safe to relay to the user verbatim; internal failures are logged
// and reported generically, never propagated.
type Service struct {
	equipment EquipmentRepository
	bookings  BookingRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new booking service.
func NewService(equipmentRepo EquipmentRepository, bookingRepo BookingRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		equipment: equipmentRepo,
		bookings:  bookingRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateRequest describes a booking creation request. All fields arrive as
// text from the operation bridge.
type CreateRequest struct {
	EquipmentName string
	Date          string
	StartTime     string
	EndTime       string
	ClubName      string
	BookedBy      string
	ContactHandle string
}

// ListEquipment returns a formatted list of all equipment with availability
// and condition.
func (s *Service) ListEquipment(ctx context.Context) Result {
	items, err := s.equipment.List(ctx)
	if err != nil {
		return s.internalError("list equipment", err)
	}
	if len(items) == 0 {
		return Result{Kind: KindEmpty, Text: "No equipment found in the system."}
	}
	return Result{Kind: KindOK, Text: renderEquipmentList(items)}
}

// CheckAvailability reports whether the named equipment is free for the
// requested slot, naming the earliest conflicting booking and the next free
// moment when it is not.
func (s *Service) CheckAvailability(ctx context.Context, equipmentName, date, startTime, endTime string) Result {
	start, end, res := s.parseSlot(date, startTime, endTime)
	if res != nil {
		return *res
	}

	eq, res := s.resolveEquipment(ctx, equipmentName)
	if res != nil {
		return *res
	}

	conflicts, err := s.activeConflicts(ctx, eq.ID, start, end)
	if err != nil {
		return s.internalError("check availability", err)
	}

	// A fully checked-out pool blocks the slot even when no active booking
	// geometrically overlaps the query window (multi-unit equipment).
	if eq.AvailableQuantity <= 0 && len(conflicts) == 0 {
		return Result{Kind: KindNoUnits, Text: renderNoUnits(eq.Name)}
	}

	if len(conflicts) == 0 {
		return Result{Kind: KindOK, Text: renderAvailable(eq.Name, start, end)}
	}

	earliest, nextFree := summarizeConflicts(conflicts)
	return Result{Kind: KindConflict, Text: renderConflict(eq.Name, earliest, nextFree)}
}

// CreateBooking creates a booking for the requested slot. The availability
// check is re-run inside the same transaction as the insert, so a check that
// passed here can still lose to a concurrent booking and come back as a
// conflict.
func (s *Service) CreateBooking(ctx context.Context, req CreateRequest) Result {
	start, end, res := s.parseSlot(req.Date, req.StartTime, req.EndTime)
	if res != nil {
		return *res
	}

	eq, res := s.resolveEquipment(ctx, req.EquipmentName)
	if res != nil {
		return *res
	}

	if eq.AvailableQuantity <= 0 {
		return Result{Kind: KindNoUnits, Text: renderNoUnits(eq.Name)}
	}

	conflicts, err := s.activeConflicts(ctx, eq.ID, start, end)
	if err != nil {
		return s.internalError("create booking", err)
	}
	if len(conflicts) > 0 {
		return Result{Kind: KindConflict, Text: renderCreateConflict(eq.Name, &conflicts[0])}
	}

	b := &Booking{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		ClubName:      req.ClubName,
		BookedBy:      req.BookedBy,
		ContactHandle: req.ContactHandle,
		StartTime:     start,
		EndTime:       end,
		Status:        StatusActive,
		CreatedAt:     s.now(),
	}

	switch err := s.bookings.Create(ctx, b); {
	case err == nil:
		return Result{Kind: KindOK, Text: renderConfirmation(b)}
	case errors.Is(err, ErrNoUnits):
		return Result{Kind: KindNoUnits, Text: renderNoUnits(eq.Name)}
	case errors.Is(err, ErrOverlap):
		// Lost the race to a concurrent booking; fetch the winner for the
		// conflict message.
		conflicts, qerr := s.activeConflicts(ctx, eq.ID, start, end)
		if qerr != nil || len(conflicts) == 0 {
			return Result{
				Kind: KindConflict,
				Text: fmt.Sprintf("❌ %s was just booked for an overlapping slot. Please choose a different time slot.", eq.Name),
			}
		}
		return Result{Kind: KindConflict, Text: renderCreateConflict(eq.Name, &conflicts[0])}
	default:
		return s.internalError("create booking", err)
	}
}

// BookingsForClub lists active bookings whose club name contains the given
// text.
func (s *Service) BookingsForClub(ctx context.Context, club string) Result {
	club = strings.TrimSpace(club)
	bookings, err := s.bookings.ListActiveByClub(ctx, club)
	if err != nil {
		return s.internalError("list club bookings", err)
	}
	if len(bookings) == 0 {
		return Result{Kind: KindEmpty, Text: fmt.Sprintf("No active bookings found for %s.", club)}
	}
	return Result{Kind: KindOK, Text: renderClubBookings(club, bookings)}
}

// CancelBooking cancels an active booking and releases one unit of the
// equipment back to the pool.
func (s *Service) CancelBooking(ctx context.Context, id string) Result {
	id = NormalizeID(id)
	prior, err := s.bookings.Finalize(ctx, id, StatusCancelled)
	switch {
	case err == nil:
		return Result{
			Kind: KindOK,
			Text: fmt.Sprintf("✅ Booking %s has been cancelled. %s is now available.", prior.ID, prior.EquipmentName),
		}
	case errors.Is(err, ErrNotFound):
		return Result{Kind: KindNotFound, Text: fmt.Sprintf("Booking %s not found.", id)}
	case errors.Is(err, ErrAlreadyFinal):
		return Result{
			Kind: KindAlreadyFinal,
			Text: fmt.Sprintf("Booking %s is already %s and cannot be cancelled.", prior.ID, prior.Status),
		}
	default:
		return s.internalError("cancel booking", err)
	}
}

// ReturnEquipment marks an active booking's equipment as returned and
// releases one unit back to the pool.
func (s *Service) ReturnEquipment(ctx context.Context, id string) Result {
	id = NormalizeID(id)
	prior, err := s.bookings.Finalize(ctx, id, StatusReturned)
	switch {
	case err == nil:
		return Result{
			Kind: KindOK,
			Text: fmt.Sprintf("✅ Equipment returned successfully. Booking %s marked as returned. %s is back in the pool.", prior.ID, prior.EquipmentName),
		}
	case errors.Is(err, ErrNotFound):
		return Result{Kind: KindNotFound, Text: fmt.Sprintf("Booking %s not found.", id)}
	case errors.Is(err, ErrAlreadyFinal):
		return Result{
			Kind: KindAlreadyFinal,
			Text: fmt.Sprintf("Booking %s is already %s.", prior.ID, prior.Status),
		}
	default:
		return s.internalError("return equipment", err)
	}
}

// ActiveBookings lists every active booking across all clubs.
func (s *Service) ActiveBookings(ctx context.Context) Result {
	bookings, err := s.bookings.ListAllActive(ctx)
	if err != nil {
		return s.internalError("list active bookings", err)
	}
	if len(bookings) == 0 {
		return Result{Kind: KindEmpty, Text: "No active bookings at the moment."}
	}
	return Result{Kind: KindOK, Text: renderActiveBookings(bookings)}
}

func (s *Service) parseSlot(date, startTime, endTime string) (time.Time, time.Time, *Result) {
	start, end, err := ParseSlot(date, startTime, endTime)
	if errors.Is(err, ErrSlotOrder) {
		return time.Time{}, time.Time{}, &Result{
			Kind: KindInvalidSlot,
			Text: "End time must be after start time. Please check your time slot.",
		}
	}
	if err != nil {
		return time.Time{}, time.Time{}, &Result{
			Kind: KindInvalidSlot,
			Text: "Invalid date or time format. Use YYYY-MM-DD for the date and 24-hour HH:MM for times.",
		}
	}
	return start, end, nil
}

func (s *Service) resolveEquipment(ctx context.Context, name string) (*equipment.Equipment, *Result) {
	name = strings.TrimSpace(name)
	eq, err := s.equipment.GetByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil, &Result{
			Kind: KindNotFound,
			Text: fmt.Sprintf("Equipment '%s' not found. Use list_equipment to see available options.", name),
		}
	}
	if err != nil {
		res := s.internalError("resolve equipment", err)
		return nil, &res
	}
	return eq, nil
}

// activeConflicts returns the active bookings on the equipment whose
// intervals overlap [start, end), ordered by start time ascending.
func (s *Service) activeConflicts(ctx context.Context, equipmentID int64, start, end time.Time) ([]Booking, error) {
	active, err := s.bookings.ListActiveForEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	var conflicts []Booking
	for i := range active {
		if active[i].Overlaps(start, end) {
			conflicts = append(conflicts, active[i])
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].StartTime.Before(conflicts[j].StartTime)
	})
	return conflicts, nil
}

// summarizeConflicts picks the earliest-starting conflict for the message and
// the latest conflict end time as the next free moment.
func summarizeConflicts(conflicts []Booking) (*Booking, time.Time) {
	earliest := &conflicts[0]
	nextFree := conflicts[0].EndTime
	for i := range conflicts {
		if conflicts[i].EndTime.After(nextFree) {
			nextFree = conflicts[i].EndTime
		}
	}
	return earliest, nextFree
}

func (s *Service) internalError(op string, err error) Result {
	s.logger.Error("booking operation failed", "op", op, "error", err)
	return Result{
		Kind: KindInternal,
		Text: fmt.Sprintf("Failed to %s due to an internal error. Please try again.", op),
	}
}
