package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("object not found")

// Store is a bucket-scoped object store. Implementations are safe for
// concurrent use.
type Store interface {
	// List returns every key under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	// PresignGet returns a temporary GET URL for key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Put writes body at key, replacing any existing object.
	Put(ctx context.Context, key string, body []byte) error
}
