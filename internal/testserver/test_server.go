// Package testserver assembles the full stack (seeded database, allocation
// engine, agent loop, HTTP router) against a scripted model for end-to-end
// tests without a live LLM backend.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oncampus/gearbot/internal/agent"
	"github.com/oncampus/gearbot/internal/domain/booking"
	"github.com/oncampus/gearbot/internal/llm"
	"github.com/oncampus/gearbot/internal/sqlite"
	"github.com/oncampus/gearbot/internal/transcript"
	"github.com/oncampus/gearbot/internal/transport"
)

// ScriptedModel plays back a fixed sequence of completions in place of a
// real model backend. Requests are recorded for assertions.
type ScriptedModel struct {
	Completions []*llm.Completion
	Requests    []llm.CompletionRequest
}

func (m *ScriptedModel) Complete(_ context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	m.Requests = append(m.Requests, req)
	if len(m.Completions) == 0 {
		return nil, fmt.Errorf("scripted model exhausted after %d requests", len(m.Requests))
	}
	next := m.Completions[0]
	m.Completions = m.Completions[1:]
	return next, nil
}

// Text queues a plain assistant reply.
func (m *ScriptedModel) Text(content string) *ScriptedModel {
	m.Completions = append(m.Completions, &llm.Completion{
		Message:      llm.Message{Role: llm.RoleAssistant, Content: content},
		FinishReason: llm.FinishStop,
	})
	return m
}

// Tools queues an assistant turn requesting the given tool calls.
func (m *ScriptedModel) Tools(calls ...llm.ToolCall) *ScriptedModel {
	m.Completions = append(m.Completions, &llm.Completion{
		Message:      llm.Message{Role: llm.RoleAssistant, ToolCalls: calls},
		FinishReason: llm.FinishToolCalls,
	})
	return m
}

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Model   *ScriptedModel
	Service *booking.Service
}

// New builds a seeded full-stack server around the given scripted model.
func New(t *testing.T, model *ScriptedModel) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	require.NoError(t, db.Seed(context.Background()))

	svc := booking.NewService(
		sqlite.NewEquipmentRepository(db),
		sqlite.NewBookingRepository(db),
		nil,
	)

	executor := agent.NewExecutor(svc, nil)
	chatAgent := agent.New(model, executor, transcript.NewStore(0), nil)
	server := httptest.NewServer(transport.NewServer(chatAgent))

	ts := &TestServer{
		Server:  server,
		DB:      db,
		Model:   model,
		Service: svc,
	}

	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return ts
}
