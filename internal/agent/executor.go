package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/oncampus/gearbot/internal/domain/booking"
)

// BookingService is the slice of the allocation engine the executor needs.
type BookingService interface {
	ListEquipment(ctx context.Context) booking.Result
	CheckAvailability(ctx context.Context, equipmentName, date, startTime, endTime string) booking.Result
	CreateBooking(ctx context.Context, req booking.CreateRequest) booking.Result
	BookingsForClub(ctx context.Context, club string) booking.Result
	CancelBooking(ctx context.Context, id string) booking.Result
	ReturnEquipment(ctx context.Context, id string) booking.Result
	ActiveBookings(ctx context.Context) booking.Result
}

// Executor bridges the model's tool calls to the allocation engine. Execute
// always returns a readable string, never an error, so a bad call becomes an
// observation the model can recover from.
type Executor struct {
	service BookingService
	logger  *slog.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(service BookingService, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{service: service, logger: logger}
}

// Execute runs the named tool with the given raw JSON arguments. Unknown
// names and malformed arguments come back as error strings.
func (e *Executor) Execute(ctx context.Context, name, arguments string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool panicked", "tool", name, "panic", r)
			result = fmt.Sprintf("Tool '%s' encountered an unexpected error: %v", name, r)
		}
	}()

	args := parseArguments(arguments)

	switch name {
	case OpListEquipment:
		return e.service.ListEquipment(ctx).Text
	case OpCheckAvailability:
		return e.service.CheckAvailability(ctx,
			args.str("equipment_name"),
			args.str("date"),
			args.str("start_time"),
			args.str("end_time"),
		).Text
	case OpMakeBooking:
		return e.service.CreateBooking(ctx, booking.CreateRequest{
			EquipmentName: args.str("equipment_name"),
			Date:          args.str("date"),
			StartTime:     args.str("start_time"),
			EndTime:       args.str("end_time"),
			ClubName:      args.str("club_name"),
			BookedBy:      args.str("booked_by"),
			ContactHandle: args.str("contact_username"),
		}).Text
	case OpGetBookings:
		return e.service.BookingsForClub(ctx, args.str("club_name")).Text
	case OpCancelBooking:
		return e.service.CancelBooking(ctx, args.str("booking_id")).Text
	case OpReturnEquipment:
		return e.service.ReturnEquipment(ctx, args.str("booking_id")).Text
	case OpGetActiveBookings:
		return e.service.ActiveBookings(ctx).Text
	default:
		return fmt.Sprintf("Unknown tool '%s'. No action was taken.", name)
	}
}

type arguments map[string]any

// parseArguments decodes the model's raw argument JSON. Malformed JSON
// degrades to an empty map so each tool reports its own missing fields.
func parseArguments(raw string) arguments {
	args := arguments{}
	if raw == "" {
		return args
	}
	_ = json.Unmarshal([]byte(raw), &args)
	return args
}

// str fetches an argument as a string, coercing non-string scalars the model
// occasionally produces.
func (a arguments) str(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
