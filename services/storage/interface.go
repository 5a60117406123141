package storage

import (
	"context"
	"io"

	"taskhive/models"
)

// StorageService stores images on the external media host.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (*models.UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
	// PublicIDFromURL recognises URLs served by this media host.
	PublicIDFromURL(rawURL string) (string, bool)
}
