package customimage

import (
	"context"
	"strings"
)

// Store persists user-uploaded background images, independent of the
// key-value store because payloads are binary.
type Store interface {
	// Add validates and stores an upload, assigning an id and the next
	// display order. Fails with ErrQuotaExceeded, ErrInvalidType or
	// ErrTooLarge.
	Add(ctx context.Context, name, mimeType string, data []byte) (*Image, error)

	// List returns metadata for all images sorted ascending by order.
	List(ctx context.Context) ([]Image, error)

	// Get returns the full record including bytes, or ErrNotFound.
	Get(ctx context.Context, id string) (*Image, error)

	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error

	// PickRandom returns a uniform random record whose id is not excluded;
	// if every record is excluded the pick is uniform over all of them.
	// Returns nil, nil when the store is empty.
	PickRandom(ctx context.Context, excludeIDs []string) (*Image, error)

	Count(ctx context.Context) (int, error)
}

func validate(count int, mimeType string, size int) error {
	if count >= MaxImages {
		return ErrQuotaExceeded
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return ErrInvalidType
	}
	if size > MaxSizeBytes {
		return ErrTooLarge
	}
	return nil
}
