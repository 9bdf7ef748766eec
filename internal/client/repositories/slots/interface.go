package slots

import "context"

// Repository stores opaque payloads under string keys.
type Repository interface {
	// Get returns the payload stored under key, or (nil, nil) if there is none.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the payload under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
