package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

func TestGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 256, req.Options.NumPredict)
		assert.InDelta(t, 0.1, req.Options.Temperature, 1e-9)

		json.NewEncoder(w).Encode(generateResponse{Response: "  Paris is the capital.  "})
	}))
	defer server.Close()

	g := New(Config{BaseURL: server.URL})
	answer, err := g.Generate(context.Background(), "What is the capital of France?",
		driven.GenerateOptions{MaxTokens: 256, Temperature: 0.1})

	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital.", answer)
}

func TestGenerator_Generate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	g := New(Config{BaseURL: server.URL})
	_, err := g.Generate(context.Background(), "question", driven.GenerateOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeneratorFailure)
}

func TestGenerator_Generate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "   "})
	}))
	defer server.Close()

	g := New(Config{BaseURL: server.URL})
	_, err := g.Generate(context.Background(), "question", driven.GenerateOptions{})

	assert.ErrorIs(t, err, domain.ErrGeneratorFailure)
}

func TestGenerator_Generate_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	g := New(Config{BaseURL: server.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Generate(ctx, "question", driven.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrGeneratorFailure)
}
