package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, h func(req openai.ChatCompletionRequest) (int, any)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		status, body := h(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "sk-test", 5*time.Second)
}

func reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestSynthesize(t *testing.T) {
	c := completionServer(t, func(req openai.ChatCompletionRequest) (int, any) {
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		assert.Equal(t, MaxTokens, req.MaxTokens)
		assert.InDelta(t, Temperature, req.Temperature, 1e-6)
		if !assert.Len(t, req.Messages, 2) {
			return http.StatusBadRequest, nil
		}
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, SystemPrompt, req.Messages[0].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Equal(t, "describe widget", req.Messages[1].Content)
		return http.StatusOK, reply("# widget\n...")
	})

	got, err := c.Synthesize(t.Context(), "describe widget", "gpt-3.5-turbo", SystemPrompt)
	require.NoError(t, err)
	assert.Equal(t, "# widget\n...", got)
}

func TestSynthesizeEmptyContent(t *testing.T) {
	c := completionServer(t, func(openai.ChatCompletionRequest) (int, any) {
		return http.StatusOK, reply("")
	})

	got, err := c.Synthesize(t.Context(), "p", "m", SystemPrompt)
	require.NoError(t, err)
	assert.Equal(t, Fallback, got)
}

func TestSynthesizeNoChoices(t *testing.T) {
	c := completionServer(t, func(openai.ChatCompletionRequest) (int, any) {
		return http.StatusOK, openai.ChatCompletionResponse{}
	})

	got, err := c.Synthesize(t.Context(), "p", "m", SystemPrompt)
	require.NoError(t, err)
	assert.Equal(t, Fallback, got)
}

func TestSynthesizeServiceError(t *testing.T) {
	c := completionServer(t, func(openai.ChatCompletionRequest) (int, any) {
		return http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"message": "Incorrect API key provided", "type": "invalid_request_error"},
		}
	})

	_, err := c.Synthesize(t.Context(), "p", "m", SystemPrompt)
	require.ErrorIs(t, err, ErrSynthesisFailed)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestSynthesizeTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "sk-test", time.Second)

	_, err := c.Synthesize(t.Context(), "p", "m", SystemPrompt)
	require.ErrorIs(t, err, ErrSynthesisFailed)
}
