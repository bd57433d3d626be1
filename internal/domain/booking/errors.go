package booking

import "errors"

var (
	// ErrNotFound indicates the requested equipment or booking doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrNoUnits indicates every unit of the equipment is checked out.
	ErrNoUnits = errors.New("no units available")
	// ErrOverlap indicates the transactional conflict re-check found an
	// active booking overlapping the requested interval.
	ErrOverlap = errors.New("interval overlaps an active booking")
	// ErrAlreadyFinal indicates the booking is already in a terminal status.
	ErrAlreadyFinal = errors.New("booking already finalized")
)
