package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("file not found")

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type FileStorage interface {
	// Upload stores the content under key and returns the normalized key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is a no-op for keys that do not exist.
	Delete(ctx context.Context, key string) error
}
