package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhquyminhquy/LocalLens/pkg/logging"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, APIKey: "test-key"}, logging.NewNoop())
}

func TestClient_GenerateText(t *testing.T) {
	ctx := context.Background()

	t.Run("returns concatenated candidate text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Hello"}, {"text": " world"}]}}]}`))
		}))
		defer srv.Close()

		text, err := newTestClient(srv.URL).GenerateText(ctx, "test-model", "say hello")

		require.NoError(t, err)
		assert.Equal(t, "Hello world", text)
	})

	t.Run("api error status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"code": 400, "message": "invalid argument", "status": "INVALID_ARGUMENT"}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).GenerateText(ctx, "test-model", "hi")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid argument")
	})

	t.Run("empty candidate list is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates": []}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).GenerateText(ctx, "test-model", "hi")

		assert.Error(t, err)
	})
}

func TestClient_GenerateWithImage(t *testing.T) {
	ctx := context.Background()
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	var captured generateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "a restaurant"}]}}]}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).GenerateWithImage(ctx, "test-model", "what is this?", image, "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "a restaurant", text)

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 2)
	assert.Equal(t, "what is this?", captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", captured.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), captured.Contents[0].Parts[1].InlineData.Data)
}

func TestClient_Configured(t *testing.T) {
	assert.True(t, newTestClient("http://example.com").Configured())
	assert.False(t, NewClient(Config{}, logging.NewNoop()).Configured())
}
