package storage

import (
	"context"
	"io"
)

// Storage persists uploaded media and returns a URL the frontend can use.
type Storage interface {
	// Save writes the object under key and returns its public URL.
	Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error)

	// Delete removes the object under key. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, key string) error
}
