package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk_MissingAPIKey(t *testing.T) {
	resp, err := anthropic.NewAnthropicClient().Ask(context.Background(), &providers.Config{}, "prompt")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, providers.ErrMissingAPIKey)
}

func TestAsk_Success(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "00:00 - Introduction"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 40, "output_tokens": 10}
		}`))
	}))
	defer srv.Close()

	resp, err := anthropic.NewAnthropicClient().Ask(context.Background(), &providers.Config{
		Credentials: providers.Credentials{ApiKey: "test-key"},
		Temperature: 0.1,
		TopP:        0.95,
		TopK:        40,
		Options:     map[string]interface{}{"base_url": srv.URL},
	}, "transcript")
	require.NoError(t, err)

	assert.Equal(t, "msg_1", resp.ID)
	assert.Equal(t, "00:00 - Introduction", resp.Response)
	assert.Equal(t, 50, resp.Usage.TotalTokens)
	assert.Equal(t, anthropic.DefaultModel, body["model"])
	assert.EqualValues(t, 40, body["top_k"])
}
