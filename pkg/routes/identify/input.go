package identify

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// readUpload reads an uploaded file, enforcing the size cap.
func readUpload(fileHeader *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fileHeader.Size > maxBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read uploaded file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", maxBytes)
	}

	return data, nil
}

// decodeBase64Image decodes a base64 image string, tolerating an optional
// data URL prefix ("data:image/jpeg;base64,...") by discarding everything up
// to and including the first comma.
func decodeBase64Image(encoded string, maxBytes int64) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx != -1 {
		encoded = encoded[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", maxBytes)
	}

	return data, nil
}

// detectMimeType sniffs the image content type from the leading bytes.
func detectMimeType(data []byte) string {
	return http.DetectContentType(data)
}
