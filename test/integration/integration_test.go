package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncampus/gearbot/internal/llm"
	"github.com/oncampus/gearbot/internal/testserver"
)

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func chat(t *testing.T, ts *testserver.TestServer, sessionID, message string) chatResponse {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"session_id": sessionID,
		"message":    message,
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.Server.URL+"/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out chatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func slotArgs(extra string) string {
	base := `"equipment_name":"Projector","date":"2026-03-15","start_time":"15:00","end_time":"17:00"`
	if extra != "" {
		base += "," + extra
	}
	return "{" + base + "}"
}

// lastToolResults returns the tool-role messages from the most recent model
// request, keyed by tool call ID.
func lastToolResults(model *testserver.ScriptedModel) map[string]string {
	results := make(map[string]string)
	last := model.Requests[len(model.Requests)-1]
	for _, msg := range last.Messages {
		if msg.Role == llm.RoleTool {
			results[msg.ToolCallID] = msg.Content
		}
	}
	return results
}

func TestBookingFlowEndToEnd(t *testing.T) {
	model := (&testserver.ScriptedModel{}).
		Tools(llm.ToolCall{ID: "c1", Name: "check_availability", Arguments: slotArgs("")}).
		Tools(llm.ToolCall{ID: "c2", Name: "make_booking",
			Arguments: slotArgs(`"club_name":"Robotics Club","booked_by":"Raj","contact_username":"@raj123"`)}).
		Text("Booked! Your booking ID is B001.")
	ts := testserver.New(t, model)

	resp := chat(t, ts, "sess-book", "book the projector on 15 March 3-5pm for Robotics Club, Raj, @raj123")
	assert.Equal(t, "Booked! Your booking ID is B001.", resp.Reply)

	// The model saw a clear availability check, then a confirmation
	results := lastToolResults(model)
	assert.Contains(t, results["c1"], "✅ Projector is available")
	assert.Contains(t, results["c2"], "Booking ID: B001")

	// Ledger state: one unit consumed, booking persisted as active
	var available int
	require.NoError(t, ts.DB.QueryRow(
		`SELECT available_quantity FROM equipment WHERE name = 'Projector'`).Scan(&available))
	assert.Equal(t, 1, available)

	var status string
	require.NoError(t, ts.DB.QueryRow(
		`SELECT status FROM bookings WHERE id = 'B001'`).Scan(&status))
	assert.Equal(t, "active", status)
}

func TestConflictSurfacesToModel(t *testing.T) {
	model := (&testserver.ScriptedModel{}).
		Tools(llm.ToolCall{ID: "c1", Name: "make_booking",
			Arguments: slotArgs(`"club_name":"Tech Club","booked_by":"Sam","contact_username":"@sam"`)}).
		Text("Done, B001.").
		Tools(llm.ToolCall{ID: "c2", Name: "check_availability", Arguments: slotArgs("")}).
		Text("That slot is taken by Tech Club, try after 5 PM.")
	ts := testserver.New(t, model)

	chat(t, ts, "sess-a", "book the projector 3-5pm on 15 March for Tech Club, Sam, @sam")

	resp := chat(t, ts, "sess-b", "is the projector free 3-5pm on 15 March?")
	assert.Contains(t, resp.Reply, "taken by Tech Club")

	results := lastToolResults(model)
	assert.Contains(t, results["c2"], "❌ Projector is booked from 3:00 PM to 5:00 PM by Tech Club")
}

func TestCancelRestoresAvailability(t *testing.T) {
	model := (&testserver.ScriptedModel{}).
		Tools(llm.ToolCall{ID: "c1", Name: "make_booking",
			Arguments: slotArgs(`"club_name":"Tech Club","booked_by":"Sam","contact_username":"@sam"`)}).
		Text("Done, B001.").
		Tools(llm.ToolCall{ID: "c2", Name: "cancel_booking", Arguments: `{"booking_id":"B001"}`}).
		Text("Cancelled B001 for you.")
	ts := testserver.New(t, model)

	chat(t, ts, "sess-c", "book the projector 3-5pm on 15 March for Tech Club, Sam, @sam")
	resp := chat(t, ts, "sess-c", "actually cancel B001")
	assert.Equal(t, "Cancelled B001 for you.", resp.Reply)

	var available int
	require.NoError(t, ts.DB.QueryRow(
		`SELECT available_quantity FROM equipment WHERE name = 'Projector'`).Scan(&available))
	assert.Equal(t, 2, available, "cancel releases the unit")

	var status string
	require.NoError(t, ts.DB.QueryRow(
		`SELECT status FROM bookings WHERE id = 'B001'`).Scan(&status))
	assert.Equal(t, "cancelled", status)
}

func TestSessionContinuityAndReset(t *testing.T) {
	model := (&testserver.ScriptedModel{}).
		Text("Hello! What would you like to book?").
		Text("You said hello before.").
		Text("Fresh start!")
	ts := testserver.New(t, model)

	chat(t, ts, "sess-r", "hello")
	chat(t, ts, "sess-r", "what did I say?")

	// Second request carried the first exchange
	secondReq := model.Requests[1]
	var roles []string
	for _, msg := range secondReq.Messages {
		roles = append(roles, msg.Role)
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)

	// Reset wipes the history
	body, _ := json.Marshal(map[string]string{"session_id": "sess-r"})
	resp, err := http.Post(ts.Server.URL+"/chat/reset", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	chat(t, ts, "sess-r", "hello again")
	thirdReq := model.Requests[2]
	require.Len(t, thirdReq.Messages, 2, "system plus the new user turn only")
}

func TestCapabilitiesAndHealth(t *testing.T) {
	ts := testserver.New(t, &testserver.ScriptedModel{})

	resp, err := http.Get(ts.Server.URL + "/capabilities")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var caps struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&caps))
	assert.Len(t, caps.Tools, 7)

	health, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestModelFailureFallback(t *testing.T) {
	// An exhausted script behaves like a dead backend
	ts := testserver.New(t, &testserver.ScriptedModel{})

	resp := chat(t, ts, "sess-f", "hello?")
	assert.Equal(t,
		"⚠️ I'm having trouble connecting to my AI backend right now. Please try again in a moment.",
		resp.Reply)
}
