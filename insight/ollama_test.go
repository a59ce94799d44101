package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClientGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req OllamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2:1b", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "TASK LIST")

		json.NewEncoder(w).Encode(OllamaResponse{Response: "You are on track."})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3.2:1b")

	text, err := client.Generate(context.Background(), "TASK LIST:\n- [Pending] x")
	require.NoError(t, err)
	assert.Equal(t, "You are on track.", text)
}

func TestOllamaClientEmptyResponseIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(OllamaResponse{Response: ""})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3.2:1b")

	_, err := client.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestOllamaClientNon200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3.2:1b")

	_, err := client.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestOllamaClientConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewOllamaClient(server.URL, "llama3.2:1b")

	_, err := client.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}
