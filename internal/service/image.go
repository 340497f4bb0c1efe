package service

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"foodgram/internal/models"

	"github.com/google/uuid"
)

const maxImageBytes = 10 * 1024 * 1024

// storeDataURLImage decodes a base64 data URL and writes the bytes
// under mediaDir. It returns the public path of the stored file.
func storeDataURLImage(mediaDir, dataURL string) (string, error) {
	payload := dataURL
	if idx := strings.Index(dataURL, ";base64,"); idx != -1 {
		payload = dataURL[idx+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", models.NewValidationError("image must be base64 encoded")
	}
	if len(raw) == 0 {
		return "", models.NewValidationError("image is empty")
	}
	if len(raw) > maxImageBytes {
		return "", models.NewValidationError("image is too large (max 10MB)")
	}

	var ext string
	switch http.DetectContentType(raw) {
	case "image/jpeg":
		ext = "jpg"
	case "image/png":
		ext = "png"
	case "image/gif":
		ext = "gif"
	default:
		return "", models.NewValidationError("unsupported image format")
	}

	rel := filepath.ToSlash(filepath.Join("recipes", fmt.Sprintf("%s.%s", uuid.NewString(), ext)))
	abs := filepath.Join(mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(abs, raw, 0o600); err != nil {
		return "", models.NewInternalError(err)
	}

	return "/media/" + rel, nil
}
