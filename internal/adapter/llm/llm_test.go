package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenAI_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-3.5-turbo", body["model"])
		assert.InDelta(t, 0.7, body["temperature"], 1e-9)
		assert.EqualValues(t, 1000, body["max_tokens"])
		messages, _ := body["messages"].([]any)
		assert.Len(t, messages, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"OPCIÓN A: Hola"}}],
			"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`)
	}))
	defer srv.Close()

	c := NewOpenAI(config.LLMConfig{
		APIKey:      "sk-test",
		BaseURL:     srv.URL + "/",
		Temperature: 0.7,
		MaxTokens:   1000,
	}, newTestLogger())

	out, err := c.Complete(context.Background(), "system", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "OPCIÓN A: Hola", out)
}

func TestAnthropic_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("X-Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-5-haiku-latest", body["model"])
		assert.EqualValues(t, 500, body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
			"content":[{"type":"text","text":"OPCIÓN A: "},{"type":"text","text":"Hola"}],
			"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":5}}`)
	}))
	defer srv.Close()

	c := NewAnthropic(config.LLMConfig{
		APIKey:      "sk-ant",
		BaseURL:     srv.URL,
		Temperature: 0.5,
		MaxTokens:   500,
	}, newTestLogger())

	out, err := c.Complete(context.Background(), "system", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "OPCIÓN A: Hola", out)
}

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := New(config.LLMConfig{}, newTestLogger())
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New(config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "k"}, newTestLogger())
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, c)

	c, err = New(config.LLMConfig{Provider: config.ProviderAnthropic, APIKey: "k"}, newTestLogger())
	require.NoError(t, err)
	assert.IsType(t, &Anthropic{}, c)

	_, err = New(config.LLMConfig{Provider: "cohere"}, newTestLogger())
	assert.Error(t, err)
}
