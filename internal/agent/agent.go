// Package agent runs the bounded tool-calling loop that turns user messages
// into booking actions and natural-language replies.
package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oncampus/gearbot/internal/llm"
	"github.com/oncampus/gearbot/internal/transcript"
)

// maxToolIterations caps how many model round-trips one user message may
// consume before the agent gives up.
const maxToolIterations = 10

// Canned replies for failure paths. Returned verbatim and recorded in the
// transcript like any other assistant turn.
const (
	replyEmptyMessage    = "Please send a message so I can help you."
	replyBackendDown     = "⚠️ I'm having trouble connecting to my AI backend right now. Please try again in a moment."
	replyNoContent       = "I wasn't able to generate a response. Please try again."
	replyUnexpected      = "I received an unexpected response. Please try rephrasing your message."
	replyIterationsSpent = "I encountered an issue processing your request. Please try again."
)

// Agent orchestrates the model, the conversation transcript, and tool
// execution.
type Agent struct {
	client      llm.Client
	executor    *Executor
	transcripts *transcript.Store
	tools       []llm.ToolDefinition
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a new Agent.
func New(client llm.Client, executor *Executor, transcripts *transcript.Store, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		client:      client,
		executor:    executor,
		transcripts: transcripts,
		tools:       Catalog(),
		logger:      logger,
		now:         time.Now,
	}
}

// Chat processes one user message and returns the assistant's reply. The
// loop calls the model, executes any requested tools, feeds the results
// back, and repeats until the model answers in text or the iteration budget
// runs out. Replies are always user-presentable; failures surface as canned
// text, never as errors.
func (a *Agent) Chat(ctx context.Context, sessionID, userMessage string) string {
	if strings.TrimSpace(userMessage) == "" {
		return replyEmptyMessage
	}

	a.transcripts.Append(sessionID, llm.Message{Role: llm.RoleUser, Content: userMessage})

	for iteration := 0; iteration < maxToolIterations; iteration++ {
		// The system prompt is rebuilt each round so the injected date and
		// time stay current.
		messages := append(
			[]llm.Message{{Role: llm.RoleSystem, Content: buildSystemPrompt(a.now())}},
			a.transcripts.History(sessionID)...,
		)

		completion, err := a.client.Complete(ctx, llm.CompletionRequest{
			Messages: messages,
			Tools:    a.tools,
		})
		if err != nil {
			a.logger.Error("model call failed", "session", sessionID, "error", err)
			return a.reply(sessionID, replyBackendDown)
		}

		switch {
		case completion.FinishReason == llm.FinishStop:
			text := completion.Message.Content
			if text == "" {
				text = replyNoContent
			}
			return a.reply(sessionID, text)

		case completion.FinishReason == llm.FinishToolCalls && len(completion.Message.ToolCalls) > 0:
			a.transcripts.Append(sessionID, completion.Message)
			for _, call := range completion.Message.ToolCalls {
				a.logger.Info("executing tool", "session", sessionID, "tool", call.Name)
				result := a.executor.Execute(ctx, call.Name, call.Arguments)
				a.transcripts.Append(sessionID, llm.Message{
					Role:       llm.RoleTool,
					Content:    result,
					ToolCallID: call.ID,
				})
			}

		default:
			a.logger.Warn("unexpected finish reason", "session", sessionID, "finish_reason", completion.FinishReason)
			return a.reply(sessionID, replyUnexpected)
		}
	}

	a.logger.Warn("tool iteration budget exhausted", "session", sessionID)
	return a.reply(sessionID, replyIterationsSpent)
}

// Reset discards the session's conversation history.
func (a *Agent) Reset(sessionID string) {
	a.transcripts.Clear(sessionID)
}

func (a *Agent) reply(sessionID, text string) string {
	a.transcripts.Append(sessionID, llm.Message{Role: llm.RoleAssistant, Content: text})
	return text
}
