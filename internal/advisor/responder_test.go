package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/greentrack/internal/common"
	"github.com/i474232898/greentrack/internal/llm/openrouter"
	"github.com/i474232898/greentrack/internal/metrics"
)

type stubCompleter struct {
	resp  openrouter.ChatCompletionResponse
	err   error
	calls int
	last  openrouter.ChatCompletionRequest
}

func (s *stubCompleter) CreateChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
	s.calls++
	s.last = req
	return s.resp, s.err
}

func contentResponse(content string) openrouter.ChatCompletionResponse {
	payload, _ := json.Marshal(map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	var resp openrouter.ChatCompletionResponse
	_ = json.Unmarshal(payload, &resp)
	return resp
}

func newTestResponder(t *testing.T, client ChatCompleter) *Responder {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	settings := ModelSettings{Model: "openai/gpt-3.5-turbo", Temperature: 0.7, MaxTokens: 800, HistoryLimit: 10}
	return NewResponder(client, settings, catalog, metrics.New(), zaptest.NewLogger(t))
}

func TestRespondUsesModel(t *testing.T) {
	stub := &stubCompleter{resp: contentResponse("<ol><li>model</li></ol>")}
	r := newTestResponder(t, stub)

	var history []Message
	for i := 0; i < 15; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		history = append(history, Message{Role: role, Content: fmt.Sprintf("m%d", i)})
	}

	reply := r.Respond(context.Background(), "solar for my shop?", history)

	assert.Equal(t, SourceLLM, reply.Source)
	assert.Equal(t, "<ol><li>model</li></ol>", reply.Content)

	req := stub.last
	assert.Equal(t, "openai/gpt-3.5-turbo", req.Model)
	assert.Equal(t, 800, req.MaxTokens)
	require.Len(t, req.Messages, 12)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, SystemPrompt, req.Messages[0].Content)
	assert.Equal(t, "m5", req.Messages[1].Content)
	assert.Equal(t, "m14", req.Messages[10].Content)
	assert.Equal(t, openrouter.Message{Role: "user", Content: "solar for my shop?"}, req.Messages[11])
}

func TestRespondFallsBack(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCompleter
	}{
		{"transport error", &stubCompleter{err: &common.TransportError{Source: "openrouter", Err: errors.New("connection refused")}}},
		{"status error", &stubCompleter{err: &common.TransportError{Source: "openrouter", StatusCode: 500, Err: errors.New("boom")}}},
		{"no choices", &stubCompleter{}},
		{"blank content", &stubCompleter{resp: contentResponse("  \n ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResponder(t, tt.stub)
			reply := r.Respond(context.Background(), "LED bulbs?", nil)

			assert.Equal(t, 1, tt.stub.calls)
			assert.Equal(t, SourceFallback, reply.Source)
			assert.Contains(t, reply.Content, "UJALA Scheme")
		})
	}
}

func TestRespondWithoutClient(t *testing.T) {
	r := newTestResponder(t, nil)
	reply := r.Respond(context.Background(), "water heater", nil)
	assert.Equal(t, SourceFallback, reply.Source)
	assert.Contains(t, reply.Content, "solar water heating")
}

func TestFallbackDeterministic(t *testing.T) {
	r := newTestResponder(t, nil)

	first, err := r.Fallback("Thinking about SOLAR panels")
	require.NoError(t, err)
	second, err := r.Fallback("Thinking about SOLAR panels")
	require.NoError(t, err)

	assert.Equal(t, []byte(first), []byte(second))
	assert.Contains(t, first, "Pradhan Mantri Rooftop Solar Scheme")
}
