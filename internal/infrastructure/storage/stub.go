package storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	catalogapp "github.com/tinymillion/backend/internal/application/catalog"
)

// StubImageUploader discards image bytes and returns placeholder URLs.
// It is used in development when no bucket is configured.
type StubImageUploader struct {
	BaseURL string
}

// NewStubImageUploader creates a stub uploader
func NewStubImageUploader() *StubImageUploader {
	return &StubImageUploader{BaseURL: "https://storage.example.com/products"}
}

// Upload drains the body and returns a unique placeholder URL
func (s *StubImageUploader) Upload(_ context.Context, img catalogapp.ImageUpload) (string, error) {
	if img.Body != nil {
		if _, err := io.Copy(io.Discard, img.Body); err != nil {
			return "", err
		}
	}
	name := uuid.NewString() + strings.ToLower(path.Ext(img.Filename))
	return strings.TrimRight(s.BaseURL, "/") + "/" + url.PathEscape(name), nil
}

var _ catalogapp.ImageUploader = (*StubImageUploader)(nil)
