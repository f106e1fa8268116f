// Package store provides durable key/value storage for board records.
//
// Every backend implements [Store]. A read of a missing key is a miss
// (found == false, err == nil), never an error, so callers can treat
// "no save" uniformly across backends.
//
//   - [FileStore]: JSON envelopes under a directory (CLI default)
//   - [MemoryStore]: process-local map (tests, ephemeral servers)
//   - [NullStore]: discards writes
//   - [RedisStore]: one Redis string per key
//   - [MongoStore]: one document per key in a collection
package store

import (
	"context"
	"errors"
)

// Store persists opaque records by key.
type Store interface {
	// Get returns the record for key. found is false when nothing is stored.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)

	// Set stores data under key, replacing any previous record.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Locator is implemented by stores that can describe where they keep a
// key, for display in the CLI.
type Locator interface {
	Location(key string) string
}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")
