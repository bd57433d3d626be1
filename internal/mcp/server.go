// Package mcp exposes the booking operations as MCP tools, so agent hosts
// can drive the allocation engine directly without the conversational loop.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oncampus/gearbot/internal/agent"
	"github.com/oncampus/gearbot/internal/domain/booking"
)

const serverInstructions = `Equipment booking tools for shared college gear.
Check availability before making a booking; every result is plain text meant
to be shown to the end user as-is. Booking IDs look like B001 and are needed
to cancel or return.`

// Config contains server configuration.
type Config struct {
	Service agent.BookingService
	Logger  *slog.Logger
}

// SlotParams identifies an equipment and time slot.
type SlotParams struct {
	EquipmentName string `json:"equipment_name" jsonschema:"Name of the equipment to check (case-insensitive)."`
	Date          string `json:"date" jsonschema:"Date of the booking in YYYY-MM-DD format."`
	StartTime     string `json:"start_time" jsonschema:"Start time in HH:MM 24-hour format."`
	EndTime       string `json:"end_time" jsonschema:"End time in HH:MM 24-hour format."`
}

// BookingParams carries everything needed to create a booking.
type BookingParams struct {
	EquipmentName   string `json:"equipment_name" jsonschema:"Name of the equipment to book (case-insensitive)."`
	Date            string `json:"date" jsonschema:"Date of the booking in YYYY-MM-DD format."`
	StartTime       string `json:"start_time" jsonschema:"Start time in HH:MM 24-hour format."`
	EndTime         string `json:"end_time" jsonschema:"End time in HH:MM 24-hour format."`
	ClubName        string `json:"club_name" jsonschema:"Name of the club making the booking."`
	BookedBy        string `json:"booked_by" jsonschema:"Full name of the person responsible for the booking."`
	ContactUsername string `json:"contact_username" jsonschema:"Messaging username (with or without @) of the contact person."`
}

// ClubParams names a club.
type ClubParams struct {
	ClubName string `json:"club_name" jsonschema:"Name of the club whose bookings should be listed."`
}

// BookingIDParams references an existing booking.
type BookingIDParams struct {
	BookingID string `json:"booking_id" jsonschema:"Booking ID in the format B001, B002, etc."`
}

// EmptyParams is used by tools that take no arguments.
type EmptyParams struct{}

// NewServer creates an MCP server exposing the booking tools.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "gearbot",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	svc := cfg.Service

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        agent.OpListEquipment,
		Description: "List all equipment with name, total quantity, available quantity, and condition.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		return textResult(svc.ListEquipment(ctx)), nil, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name: agent.OpCheckAvailability,
		Description: "Check if a specific equipment is available for a given date and time slot. " +
			"Always call this before make_booking.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, p SlotParams) (*sdkmcp.CallToolResult, any, error) {
		return textResult(svc.CheckAvailability(ctx, p.EquipmentName, p.Date, p.StartTime, p.EndTime)), nil, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name: agent.OpMakeBooking,
		Description: "Create a new equipment booking after confirming availability. " +
			"Requires all 7 parameters. Always call check_availability first.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, p BookingParams) (*sdkmcp.CallToolResult, any, error) {
		return textResult(svc.CreateBooking(ctx, booking.CreateRequest{
			EquipmentName: p.EquipmentName,
			Date:          p.Date,
			StartTime:     p.StartTime,
			EndTime:       p.EndTime,
			ClubName:      p.ClubName,
			BookedBy:      p.BookedBy,
			ContactHandle: p.ContactUsername,
		})), nil, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        agent.OpGetBookings,
		Description: "Get all active bookings for a specific club.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, p ClubParams) (*sdkmcp.CallToolResult, any, error) {
		return textResult(svc.BookingsForClub(ctx, p.ClubName)), nil, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        agent.OpCancelBooking,
		Description: "Cancel an active booking using its Booking ID.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, p BookingIDParams) (*sdkmcp.CallToolResult, any, error) {
		return textResult(svc.CancelBooking(ctx, p.BookingID)), nil, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        agent.OpReturnEquipment,
		Description: "Mark equipment as returned using Booking ID. Updates availability.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, p BookingIDParams) (*sdkmcp.CallToolResult, any, error) {
		return textResult(svc.ReturnEquipment(ctx, p.BookingID)), nil, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name: agent.OpGetActiveBookings,
		Description: "Get all currently active bookings across all clubs. " +
			"Use for admin queries like 'who has the projector'.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		return textResult(svc.ActiveBookings(ctx)), nil, nil
	})

	return server
}

// textResult wraps an engine result as tool output. Refusals (conflicts,
// unknown IDs, bad input) are still successful tool calls; the text explains
// the refusal to the caller.
func textResult(res booking.Result) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: res.Text}},
	}
}
