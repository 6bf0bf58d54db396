package catalog

import (
	"context"
	"fmt"
	"io"
)

// ImageUpload is one multipart image file
type ImageUpload struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageUploader stores product images and returns their public URLs
type ImageUploader interface {
	Upload(ctx context.Context, img ImageUpload) (string, error)
}

// UploadAll stores the files in order and returns their URLs. Files
// without a body are skipped.
func UploadAll(ctx context.Context, uploader ImageUploader, uploads []ImageUpload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	if uploader == nil {
		return nil, fmt.Errorf("upload %d images: no uploader configured", len(uploads))
	}
	urls := make([]string, 0, len(uploads))
	for _, img := range uploads {
		if img.Body == nil {
			continue
		}
		url, err := uploader.Upload(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", img.Field, err)
		}
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}
