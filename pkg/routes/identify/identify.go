// Package identify exposes the restaurant identification endpoint.
package identify

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/minhquyminhquy/LocalLens/pkg/identify"
)

// Handler handles identification requests
type Handler struct {
	service       *identify.Service
	logger        ectologger.Logger
	maxImageBytes int64
}

// NewHandler creates a new identification handler
func NewHandler(service *identify.Service, maxImageBytes int64, logger ectologger.Logger) *Handler {
	return &Handler{
		service:       service,
		logger:        logger,
		maxImageBytes: maxImageBytes,
	}
}

// RegisterRoutes registers identification endpoints
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/identify-restaurant", h.IdentifyRestaurant)
	e.POST("/api/v1/identify-restaurant", h.IdentifyRestaurant)
}

// coordinates is validated after the raw form values parse as floats.
type coordinates struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

// IdentifyRestaurant accepts a photo plus a geolocation and responds with the
// identified establishment. The image arrives as exactly one of a multipart
// file upload or a base64 form field.
func (h *Handler) IdentifyRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	latStr := c.FormValue("latitude")
	lngStr := c.FormValue("longitude")
	if latStr == "" || lngStr == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "'latitude' and 'longitude' form fields are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "'latitude' must be a number")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "'longitude' must be a number")
	}

	if err := c.Validate(&coordinates{Latitude: lat, Longitude: lng}); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "latitude or longitude out of range")
	}

	image, mimeType, err := h.readImage(c)
	if err != nil {
		return err
	}

	result, err := h.service.Identify(ctx, lat, lng, image, mimeType)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// readImage extracts the image bytes from whichever source the request used,
// rejecting requests that supply both sources or neither.
func (h *Handler) readImage(c echo.Context) ([]byte, string, error) {
	fileHeader, fileErr := c.FormFile("file")
	hasFile := fileErr == nil && fileHeader != nil

	imageBase64 := c.FormValue("image_base64")
	hasBase64 := imageBase64 != ""

	switch {
	case !hasFile && !hasBase64:
		return nil, "", httperror.NewHTTPError(http.StatusBadRequest, "Either 'file' or 'image_base64' must be provided")
	case hasFile && hasBase64:
		return nil, "", httperror.NewHTTPError(http.StatusBadRequest, "Provide either 'file' or 'image_base64', not both")
	}

	var image []byte
	var err error
	if hasFile {
		image, err = readUpload(fileHeader, h.maxImageBytes)
	} else {
		image, err = decodeBase64Image(imageBase64, h.maxImageBytes)
	}
	if err != nil {
		return nil, "", httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(image) == 0 {
		return nil, "", httperror.NewHTTPError(http.StatusBadRequest, "image data is empty")
	}

	return image, detectMimeType(image), nil
}
