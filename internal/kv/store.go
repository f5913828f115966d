// Package kv defines the durable key-value store the ledger persists into.
//
// The store has plain get/set/clear semantics and no atomicity guarantee
// across keys: the ledger overwrites its full state on every save, so
// last-write-wins on the whole blob is the only ordering it relies on.
package kv

import "context"

type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	Close() error
}
