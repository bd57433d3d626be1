package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oncampus/gearbot/internal/domain/booking"
)

// stubService records the last call and returns canned results per tool.
type stubService struct {
	lastOp     string
	lastCreate booking.CreateRequest
	lastArgs   []string
}

func (s *stubService) result(op string) booking.Result {
	s.lastOp = op
	return booking.Result{Kind: booking.KindOK, Text: op + " ok"}
}

func (s *stubService) ListEquipment(context.Context) booking.Result {
	return s.result(OpListEquipment)
}

func (s *stubService) CheckAvailability(_ context.Context, name, date, start, end string) booking.Result {
	s.lastArgs = []string{name, date, start, end}
	return s.result(OpCheckAvailability)
}

func (s *stubService) CreateBooking(_ context.Context, req booking.CreateRequest) booking.Result {
	s.lastCreate = req
	return s.result(OpMakeBooking)
}

func (s *stubService) BookingsForClub(_ context.Context, club string) booking.Result {
	s.lastArgs = []string{club}
	return s.result(OpGetBookings)
}

func (s *stubService) CancelBooking(_ context.Context, id string) booking.Result {
	s.lastArgs = []string{id}
	return s.result(OpCancelBooking)
}

func (s *stubService) ReturnEquipment(_ context.Context, id string) booking.Result {
	s.lastArgs = []string{id}
	return s.result(OpReturnEquipment)
}

func (s *stubService) ActiveBookings(context.Context) booking.Result {
	return s.result(OpGetActiveBookings)
}

func TestExecutor_Dispatch(t *testing.T) {
	svc := &stubService{}
	exec := NewExecutor(svc, nil)
	ctx := context.Background()

	out := exec.Execute(ctx, OpListEquipment, "{}")
	assert.Equal(t, "list_equipment ok", out)

	out = exec.Execute(ctx, OpCheckAvailability,
		`{"equipment_name":"Projector","date":"2026-03-15","start_time":"15:00","end_time":"17:00"}`)
	assert.Equal(t, "check_availability ok", out)
	assert.Equal(t, []string{"Projector", "2026-03-15", "15:00", "17:00"}, svc.lastArgs)

	out = exec.Execute(ctx, OpMakeBooking,
		`{"equipment_name":"Projector","date":"2026-03-15","start_time":"15:00","end_time":"17:00",
		  "club_name":"Robotics Club","booked_by":"Raj","contact_username":"@raj123"}`)
	assert.Equal(t, "make_booking ok", out)
	assert.Equal(t, "Robotics Club", svc.lastCreate.ClubName)
	assert.Equal(t, "@raj123", svc.lastCreate.ContactHandle)

	exec.Execute(ctx, OpGetBookings, `{"club_name":"Robotics Club"}`)
	assert.Equal(t, []string{"Robotics Club"}, svc.lastArgs)

	exec.Execute(ctx, OpCancelBooking, `{"booking_id":"B001"}`)
	assert.Equal(t, []string{"B001"}, svc.lastArgs)

	exec.Execute(ctx, OpReturnEquipment, `{"booking_id":"B002"}`)
	assert.Equal(t, []string{"B002"}, svc.lastArgs)

	out = exec.Execute(ctx, OpGetActiveBookings, "")
	assert.Equal(t, "get_active_bookings ok", out)
}

func TestExecutor_UnknownTool(t *testing.T) {
	exec := NewExecutor(&stubService{}, nil)
	out := exec.Execute(context.Background(), "teleport_equipment", "{}")
	assert.Equal(t, "Unknown tool 'teleport_equipment'. No action was taken.", out)
}

func TestExecutor_MalformedArguments(t *testing.T) {
	svc := &stubService{}
	exec := NewExecutor(svc, nil)

	// Broken JSON degrades to empty strings; the engine reports the miss
	out := exec.Execute(context.Background(), OpCancelBooking, `{"booking_id":`)
	assert.Equal(t, "cancel_booking ok", out)
	assert.Equal(t, []string{""}, svc.lastArgs)
}

func TestExecutor_CoercesScalars(t *testing.T) {
	svc := &stubService{}
	exec := NewExecutor(svc, nil)

	// Models sometimes emit numbers where strings are expected
	exec.Execute(context.Background(), OpGetBookings, `{"club_name":42}`)
	assert.Equal(t, []string{"42"}, svc.lastArgs)
}

type panickyService struct{ stubService }

func (p *panickyService) ListEquipment(context.Context) booking.Result {
	panic("boom")
}

func TestExecutor_RecoversPanic(t *testing.T) {
	exec := NewExecutor(&panickyService{}, nil)
	out := exec.Execute(context.Background(), OpListEquipment, "{}")
	assert.Equal(t, "Tool 'list_equipment' encountered an unexpected error: boom", out)
}
