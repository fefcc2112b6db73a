package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/divimap/internal/config"
)

func completionServer(t *testing.T, status int, body string, check func(*http.Request, []byte)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if check != nil {
			check(r, b)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testRequest() *CompletionRequest {
	req := NewRequest("", "Devuelve solo JSON válido.", "hola")
	req.MaxTokens = 200
	req.Temperature = 0.1
	return req
}

func TestCompleteSendsChatCompletionBody(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"{}"}}]}`,
		func(r *http.Request, body []byte) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

			var got map[string]any
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, "test-model", got["model"])
			assert.InDelta(t, 0.1, got["temperature"], 1e-9)
			assert.EqualValues(t, 200, got["max_tokens"])
			assert.NotContains(t, got, "stream")

			msgs := got["messages"].([]any)
			require.Len(t, msgs, 2)
			assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
			assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
		})

	p := NewCustomProvider(srv.URL, "sk-test", "test-model")
	resp, err := p.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "{}", resp.Content)
}

func TestCompleteReplyShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"legacy text", `{"choices":[{"text":"{\"tipo\":\"filtro\"}"}]}`, `{"tipo":"filtro"}`},
		{"chat message", `{"choices":[{"message":{"content":"hola"}}]}`, "hola"},
		{"empty text falls back to message", `{"choices":[{"text":"","message":{"content":"hola"}}]}`, "hola"},
		{"no choices", `{"choices":[]}`, ""},
		{"choice without text", `{"choices":[{"finish_reason":"stop"}]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, http.StatusOK, tt.body, nil)
			resp, err := NewCustomProvider(srv.URL, "k", "m").Complete(context.Background(), testRequest())
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Content)
			assert.Equal(t, tt.body, string(resp.Raw))
		})
	}
}

func TestCompleteNon2xx(t *testing.T) {
	srv := completionServer(t, http.StatusUnauthorized, `{"error":"bad key"}`, nil)
	_, err := NewCustomProvider(srv.URL, "k", "m").Complete(context.Background(), testRequest())

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Contains(t, se.Body, "bad key")
}

func TestCompleteUndecodableBody(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `<html>gateway</html>`, nil)
	_, err := NewCustomProvider(srv.URL, "k", "m").Complete(context.Background(), testRequest())

	var be *BodyError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "<html>gateway</html>", be.Body)
}

func TestOllamaSendsNoAuthorization(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{"choices":[{"message":{"content":"x"}}]}`,
		func(r *http.Request, _ []byte) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))
		})

	p := NewOllamaProvider(srv.URL+"/", "qwen2.5:3b")
	assert.Equal(t, "ollama", p.Name())
	_, err := p.Complete(context.Background(), testRequest())
	require.NoError(t, err)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{"openrouter default", config.Config{APIKey: "k"}, "openrouter", false},
		{"openrouter without key", config.Config{Provider: "openrouter"}, "", true},
		{"openai", config.Config{Provider: "openai", APIKey: "k"}, "openai", false},
		{"groq", config.Config{Provider: "groq", APIKey: "k"}, "groq", false},
		{"ollama without key", config.Config{Provider: "ollama"}, "ollama", false},
		{"custom needs base url", config.Config{Provider: "custom"}, "", true},
		{"custom", config.Config{Provider: "custom", BaseURL: "http://localhost:1234/v1"}, "custom", false},
		{"unknown", config.Config{Provider: "nope"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}
