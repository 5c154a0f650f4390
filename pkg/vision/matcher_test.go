package vision

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhquyminhquy/LocalLens/pkg/genai"
	"github.com/minhquyminhquy/LocalLens/pkg/logging"
	"github.com/minhquyminhquy/LocalLens/pkg/models"
)

func TestCandidateListing(t *testing.T) {
	candidates := []models.Restaurant{
		{Name: "Ravintola Aino", Address: "Pohjoisesplanadi 21"},
		{Name: "Cafe Regatta", Address: "Merikannontie 8"},
	}

	listing := CandidateListing(candidates)

	assert.Equal(t, "1. Ravintola Aino - Pohjoisesplanadi 21\n2. Cafe Regatta - Merikannontie 8", listing)
}

func TestMatcher_Judge(t *testing.T) {
	ctx := context.Background()
	candidates := []models.Restaurant{{Name: "Cafe Regatta", Address: "Merikannontie 8"}}

	t.Run("returns raw model text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"identified_restaurant\": \"Cafe Regatta\"}"}]}}]}`))
		}))
		defer srv.Close()

		client := genai.NewClient(genai.Config{BaseURL: srv.URL, APIKey: "k"}, logging.NewNoop())
		matcher := NewMatcher(client, "test-model", logging.NewNoop())

		raw, err := matcher.Judge(ctx, []byte{0x1}, "image/jpeg", candidates)

		require.NoError(t, err)
		assert.Contains(t, raw, "Cafe Regatta")
	})

	t.Run("model failure is a bad gateway error", func(t *testing.T) {
		client := genai.NewClient(genai.Config{BaseURL: "http://127.0.0.1:0", APIKey: "k"}, logging.NewNoop())
		matcher := NewMatcher(client, "test-model", logging.NewNoop())

		_, err := matcher.Judge(ctx, []byte{0x1}, "image/jpeg", candidates)

		require.Error(t, err)
		assert.True(t, httperror.IsHTTPError(err))
		assert.Equal(t, http.StatusBadGateway, httperror.GetStatusCode(err))
	})
}
