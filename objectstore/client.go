// Package objectstore is a minimal abstraction over the object storage
// operations the real-time chunk pipeline needs (list and get; there is no
// head or existence check), so that
// package realtime can be exercised against an in-memory fake without
// talking to AWS.
package objectstore

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a requested key does not exist. Object
// stores report this differently (S3 returns a 404-shaped error, for
// example); adapters are responsible for translating their backend's
// not-found signal into this sentinel.
var ErrNotFound = errors.New("objectstore: object not found")

// Object is a single listed object's key and last-modified time.
type Object struct {
	Key          string
	LastModified time.Time
	Size         int64
}

// Client is the object store surface the real-time pipeline depends on.
type Client interface {
	// List returns every object whose key starts with prefix, in
	// lexicographic key order.
	List(ctx context.Context, prefix string) ([]Object, error)

	// Get returns the full contents of the object at key. The caller must
	// close the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
