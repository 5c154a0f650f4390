package identify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhquyminhquy/LocalLens/pkg/enrichment"
	"github.com/minhquyminhquy/LocalLens/pkg/events"
	"github.com/minhquyminhquy/LocalLens/pkg/genai"
	svc "github.com/minhquyminhquy/LocalLens/pkg/identify"
	"github.com/minhquyminhquy/LocalLens/pkg/logging"
	"github.com/minhquyminhquy/LocalLens/pkg/matching"
	"github.com/minhquyminhquy/LocalLens/pkg/middleware"
	"github.com/minhquyminhquy/LocalLens/pkg/places"
	"github.com/minhquyminhquy/LocalLens/pkg/vision"
)

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// newTestEcho wires the handler into a minimal echo instance. The provider
// URLs only matter for tests that make it past input validation.
func newTestEcho(t *testing.T, placesURL, geminiURL string) *echo.Echo {
	t.Helper()
	logger := logging.NewNoop()

	placesClient := places.NewClient(places.Config{BaseURL: placesURL, APIKey: "k", RadiusMeters: 100, Category: "restaurant"}, logger)
	genaiClient := genai.NewClient(genai.Config{BaseURL: geminiURL, APIKey: "k"}, logger)
	matcher := vision.NewMatcher(genaiClient, "vision-model", logger)
	summarizer := enrichment.NewSummarizer(genaiClient, "summary-model", logger)
	enricher := enrichment.NewEnricher(placesClient, summarizer, 5, logger)
	service := svc.NewService(placesClient, matcher, matching.NewResolver(logger), enricher, events.NewEmitter(nil, logger), logger)

	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	e.HTTPErrorHandler = middleware.Error(logger)
	NewHandler(service, 1024*1024, logger).RegisterRoutes(e)
	return e
}

func postForm(e *echo.Echo, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/identify-restaurant", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentifyRestaurant_InputValidation(t *testing.T) {
	e := newTestEcho(t, "http://127.0.0.1:0", "http://127.0.0.1:0")
	imageB64 := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF})

	t.Run("missing coordinates", func(t *testing.T) {
		rec := postForm(e, url.Values{"image_base64": {imageB64}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric latitude", func(t *testing.T) {
		rec := postForm(e, url.Values{
			"latitude":     {"north"},
			"longitude":    {"24.9"},
			"image_base64": {imageB64},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		rec := postForm(e, url.Values{
			"latitude":     {"123.4"},
			"longitude":    {"24.9"},
			"image_base64": {imageB64},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no image source", func(t *testing.T) {
		rec := postForm(e, url.Values{
			"latitude":  {"60.17"},
			"longitude": {"24.94"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "'file' or 'image_base64'")
	})

	t.Run("both image sources", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("latitude", "60.17"))
		require.NoError(t, writer.WriteField("longitude", "24.94"))
		require.NoError(t, writer.WriteField("image_base64", imageB64))
		part, err := writer.CreateFormFile("file", "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte{0xFF, 0xD8, 0xFF})
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/identify-restaurant", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "not both")
	})

	t.Run("malformed base64", func(t *testing.T) {
		rec := postForm(e, url.Values{
			"latitude":     {"60.17"},
			"longitude":    {"24.94"},
			"image_base64": {"!!not-base64!!"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestIdentifyRestaurant_EndToEnd(t *testing.T) {
	placesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/nearbysearch/json":
			w.Write([]byte(`{"status": "OK", "results": [{"name": "Cafe Regatta", "vicinity": "Merikannontie 8", "place_id": "p2", "types": ["cafe"], "geometry": {"location": {"lat": 60.177, "lng": 24.909}}}]}`))
		case "/details/json":
			w.Write([]byte(`{"status": "OK", "result": {"reviews": []}}`))
		}
	}))
	defer placesSrv.Close()

	geminiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"identified_restaurant\": \"Cafe Regatta\", \"restaurant_id\": \"p2\", \"confidence_score\": 91, \"reasoning\": \"matches\", \"visible_clues\": []}"}]}}]}`))
	}))
	defer geminiSrv.Close()

	e := newTestEcho(t, placesSrv.URL, geminiSrv.URL)

	rec := postForm(e, url.Values{
		"latitude":     {"60.17"},
		"longitude":    {"24.94"},
		"image_base64": {"data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF})},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result svc.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, svc.StatusSuccess, result.Message)
	assert.Equal(t, 91, result.Confidence)
	require.NotNil(t, result.IdentifiedRestaurant)
	assert.Equal(t, "p2", result.IdentifiedRestaurant.PlaceID)
	assert.Equal(t, 1, result.NearbyCount)
}
