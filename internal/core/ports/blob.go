package ports

import "context"

// BlobCache is a generic async key-value store for opaque string blobs, used
// to persist the define snapshot across builds.
//
//go:generate mockgen -source=blob.go -destination=mocks/mock_blob.go -package=mocks
type BlobCache interface {
	// Get retrieves the blob stored under key.
	// Returns domain.ErrBlobNotFound if no blob exists.
	Get(ctx context.Context, key string) (string, error)

	// Store writes the blob under key, replacing any previous value.
	Store(ctx context.Context, key string, value string) error

	// Delete removes the blob under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
