// Package snapshot persists navigation-stack snapshots so a host can
// restore its stack after a restart or on another instance.
//
// A snapshot is the stack's path sequence, root first. Stores hold opaque
// encoded bytes keyed by a caller-chosen identifier; Encode and Decode
// define the JSON codec the host uses.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Store is a snapshot persistence backend. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save persists a snapshot under the key, overwriting any previous
	// snapshot. ttl of zero means no expiration.
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Load retrieves a snapshot by key.
	// Returns (nil, nil) when no snapshot exists or it has expired.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes a snapshot. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrStoreClosed is returned when operations are attempted on a closed
// store.
var ErrStoreClosed = errors.New("snapshot: store is closed")

// Encode serializes a stack path sequence.
func Encode(paths []string) ([]byte, error) {
	data, err := json.Marshal(paths)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encoding: %w", err)
	}
	return data, nil
}

// Decode deserializes a stack path sequence.
func Decode(data []byte) ([]string, error) {
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("snapshot: decoding: %w", err)
	}
	return paths, nil
}
