package agent

import "github.com/oncampus/gearbot/internal/llm"

// Tool names exposed to the model. The executor's dispatch switch and the
// MCP surface both key off these.
const (
	OpListEquipment     = "list_equipment"
	OpCheckAvailability = "check_availability"
	OpMakeBooking       = "make_booking"
	OpGetBookings       = "get_bookings"
	OpCancelBooking     = "cancel_booking"
	OpReturnEquipment   = "return_equipment"
	OpGetActiveBookings = "get_active_bookings"
)

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// Catalog returns the tool definitions offered to the model on every turn.
func Catalog() []llm.ToolDefinition {
	slotProps := func() map[string]any {
		return map[string]any{
			"equipment_name": stringProp("Name of the equipment to check (case-insensitive)."),
			"date":           stringProp("Date of the booking in YYYY-MM-DD format."),
			"start_time":     stringProp("Start time in HH:MM 24-hour format."),
			"end_time":       stringProp("End time in HH:MM 24-hour format."),
		}
	}

	bookingProps := slotProps()
	bookingProps["club_name"] = stringProp("Name of the club making the booking.")
	bookingProps["booked_by"] = stringProp("Full name of the person responsible for the booking.")
	bookingProps["contact_username"] = stringProp("Messaging username (with or without @) of the contact person.")

	return []llm.ToolDefinition{
		{
			Name:        OpListEquipment,
			Description: "List all equipment with name, total quantity, available quantity, and condition.",
			Parameters:  objectSchema(map[string]any{}),
		},
		{
			Name: OpCheckAvailability,
			Description: "Check if a specific equipment is available for a given date and time slot. " +
				"Always call this before make_booking.",
			Parameters: objectSchema(slotProps(),
				"equipment_name", "date", "start_time", "end_time"),
		},
		{
			Name: OpMakeBooking,
			Description: "Create a new equipment booking after confirming availability. " +
				"Requires all 7 parameters. Always call check_availability first.",
			Parameters: objectSchema(bookingProps,
				"equipment_name", "date", "start_time", "end_time",
				"club_name", "booked_by", "contact_username"),
		},
		{
			Name:        OpGetBookings,
			Description: "Get all active bookings for a specific club.",
			Parameters: objectSchema(map[string]any{
				"club_name": stringProp("Name of the club whose bookings should be listed."),
			}, "club_name"),
		},
		{
			Name:        OpCancelBooking,
			Description: "Cancel an active booking using its Booking ID.",
			Parameters: objectSchema(map[string]any{
				"booking_id": stringProp("Booking ID in the format B001, B002, etc."),
			}, "booking_id"),
		},
		{
			Name:        OpReturnEquipment,
			Description: "Mark equipment as returned using Booking ID. Updates availability.",
			Parameters: objectSchema(map[string]any{
				"booking_id": stringProp("Booking ID in the format B001, B002, etc."),
			}, "booking_id"),
		},
		{
			Name: OpGetActiveBookings,
			Description: "Get all currently active bookings across all clubs. " +
				"Use for admin queries like 'who has the projector'.",
			Parameters: objectSchema(map[string]any{}),
		},
	}
}
