package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultOpenAIConfig("test-key")
	cfg.BaseURL = server.URL
	cfg.Model = "test-model"
	cfg.Timeout = 5 * time.Second
	return NewOpenAIClient(cfg, nil)
}

func TestOpenAIClient_Complete_Text(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openaiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Empty(t, req.ToolChoice, "no tools means no tool_choice")

		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{{
				Message:      openaiMessage{Role: "assistant", Content: "Hello!"},
				FinishReason: FinishStop,
			}},
		})
	})

	completion, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "You are helpful."},
			{Role: RoleUser, Content: "Hi"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, FinishStop, completion.FinishReason)
	assert.Equal(t, "Hello!", completion.Message.Content)
	assert.Empty(t, completion.Message.ToolCalls)
}

func TestOpenAIClient_Complete_ToolCalls(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req openaiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "function", req.Tools[0].Type)
		assert.Equal(t, "check_availability", req.Tools[0].Function.Name)
		assert.Equal(t, "auto", req.ToolChoice)

		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{{
				Message: openaiMessage{
					Role: "assistant",
					ToolCalls: []openaiToolCall{{
						ID:   "call_1",
						Type: "function",
						Function: openaiToolFunction{
							Name:      "check_availability",
							Arguments: `{"equipment_name":"Projector"}`,
						},
					}},
				},
				FinishReason: FinishToolCalls,
			}},
		})
	})

	completion, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "Is the projector free?"}},
		Tools: []ToolDefinition{{
			Name:        "check_availability",
			Description: "Check equipment availability",
			Parameters:  map[string]any{"type": "object"},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, FinishToolCalls, completion.FinishReason)
	require.Len(t, completion.Message.ToolCalls, 1)
	assert.Equal(t, "call_1", completion.Message.ToolCalls[0].ID)
	assert.Equal(t, "check_availability", completion.Message.ToolCalls[0].Name)
	assert.JSONEq(t, `{"equipment_name":"Projector"}`, completion.Message.ToolCalls[0].Arguments)
}

func TestOpenAIClient_Complete_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{{
				Message:      openaiMessage{Role: "assistant", Content: "ok"},
				FinishReason: FinishStop,
			}},
		})
	})

	completion, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "Hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", completion.Message.Content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenAIClient_Complete_BadRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	})

	_, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "Hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error 400")
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIClient_Complete_NoKey(t *testing.T) {
	cfg := DefaultOpenAIConfig("")
	client := NewOpenAIClient(cfg, nil)

	_, err := client.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")
}
