package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test/model",
		Referer: "https://echolens.example",
		Title:   "EchoLens",
	})
	require.NoError(t, err)
	return svc
}

func TestLLMService_Chat(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "https://echolens.example", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "EchoLens", r.Header.Get("X-Title"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test/model", req.Model)
		require.Len(t, req.Messages, 1)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "CRASHES: app dies [[R_c1]]"}},
			},
		})
	})

	content, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "analyze this"},
	}, driven.ChatOptions{Temperature: 0.0001})
	require.NoError(t, err)
	assert.Equal(t, "CRASHES: app dies [[R_c1]]", content)
}

func TestLLMService_Chat_SendsZeroTemperature(t *testing.T) {
	var body map[string]any
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "find matches"},
	}, driven.ChatOptions{Temperature: 0})
	require.NoError(t, err)

	// Zero must reach the wire; an absent field means the provider
	// default temperature instead of deterministic output.
	temp, ok := body["temperature"]
	require.True(t, ok, "temperature field missing from request body")
	assert.Equal(t, float64(0), temp)
	assert.NotContains(t, body, "max_tokens")
}

func TestLLMService_Chat_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limited","code":429}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	})

	content, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLLMService_Chat_APIError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid key","code":401}}`))
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key")
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err)
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(LLMConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.NoError(t, svc.Close())
}
