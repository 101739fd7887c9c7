package storage

import (
	"context"
	"io"

	"storefront/internal/model"
)

// Image is one uploaded product picture.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageUploader stores product pictures and returns their public URL.
type ImageUploader interface {
	Upload(ctx context.Context, sellerID string, img Image) (string, error)
}

// DisabledUploader rejects every upload. It is used when no blob store is configured.
type DisabledUploader struct{}

func (DisabledUploader) Upload(context.Context, string, Image) (string, error) {
	return "", model.ErrUploadUnavailable
}
