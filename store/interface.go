package store

import "errors"

// ErrNotFound is returned when a key has no record. Any other error from a
// KV method is a storage failure (I/O, corruption).
var ErrNotFound = errors.New("record not found")

// KV is an ordered key-value store for serialized records. All persisted
// state lives behind this interface; callers never cache decoded records
// across calls.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Put unconditionally upserts key.
	Put(key string, value []byte) error

	// Delete removes key, returning ErrNotFound if it was absent.
	Delete(key string) error

	// Scan visits every key sharing prefix, in key order, until the keys
	// run out or fn returns an error (which Scan returns verbatim).
	Scan(prefix string, fn func(key string, value []byte) error) error

	// WriteBatch applies every operation in b atomically: all of them
	// land or none do.
	WriteBatch(b *Batch) error

	Close() error
}
