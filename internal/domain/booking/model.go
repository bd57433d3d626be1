package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the lifecycle state of a booking. Transitions out of
// StatusActive are terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

// Booking binds one piece of equipment to a club for a half-open time
// interval [StartTime, EndTime).
type Booking struct {
	ID            string
	EquipmentID   int64
	EquipmentName string
	ClubName      string
	BookedBy      string
	ContactHandle string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
	CreatedAt     time.Time
}

// Overlaps reports whether the booking's interval overlaps [start, end)
// under the half-open rule: a < d && c < b.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// ErrSlotOrder indicates the slot's end does not come after its start.
var ErrSlotOrder = errors.New("end time must be after start time")

// ParseSlot converts a date plus start/end time strings into the interval
// bounds. Dates are YYYY-MM-DD and times 24-hour HH:MM. Returns ErrSlotOrder
// when end <= start.
func ParseSlot(date, startTime, endTime string) (start, end time.Time, err error) {
	start, err = time.ParseInLocation(dateTimeLayout, date+" "+startTime, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing slot start: %w", err)
	}
	end, err = time.ParseInLocation(dateTimeLayout, date+" "+endTime, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing slot end: %w", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrSlotOrder
	}
	return start, end, nil
}

const (
	idPrefix = 'B'
	idWidth  = 3
)

// NextID assigns the next booking identifier in the B001, B002, ...
// sequence. It takes the maximum numeric suffix across every existing
// identifier regardless of status, so numbers retired by cancellation are
// never reused. Identifiers that fail to parse are ignored.
func NextID(existing []string) string {
	max := 0
	for _, id := range existing {
		if len(id) < 2 || (id[0] != idPrefix && id[0] != idPrefix+'a'-'A') {
			continue
		}
		n, err := strconv.Atoi(id[1:])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%c%0*d", idPrefix, idWidth, max+1)
}

// NormalizeID trims whitespace and upper-cases a user-supplied booking
// identifier.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
