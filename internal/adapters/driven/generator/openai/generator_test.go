package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

func TestGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, 256, req.MaxTokens)
		assert.InDelta(t, 0.1, req.Temperature, 1e-9)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Paris is the capital.  "}}]}`))
	}))
	defer server.Close()

	g := New(Config{APIKey: "sk-test", BaseURL: server.URL})
	answer, err := g.Generate(context.Background(), "What is the capital of France?",
		driven.GenerateOptions{MaxTokens: 256, Temperature: 0.1})

	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital.", answer)
}

func TestGenerator_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	g := New(Config{APIKey: "sk-bad", BaseURL: server.URL})
	_, err := g.Generate(context.Background(), "question", driven.GenerateOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeneratorFailure)
}

func TestGenerator_Generate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	g := New(Config{APIKey: "sk-test", BaseURL: server.URL})
	_, err := g.Generate(context.Background(), "question", driven.GenerateOptions{})

	assert.ErrorIs(t, err, domain.ErrGeneratorFailure)
}

func TestGenerator_Ping(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		g := New(Config{})
		assert.Error(t, g.Ping(context.Background()))
	})

	t.Run("reachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/models", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		g := New(Config{APIKey: "sk-test", BaseURL: server.URL})
		assert.NoError(t, g.Ping(context.Background()))
	})
}
