// Package store provides the document store the collection lives in: schemaless
// JSON records grouped into collections, scoped to an owning user, mutated only
// through atomic batched writes.
package store

import (
	"context"
	"errors"
)

// Collection paths.
const (
	CollectionCategories = "categories"
	CollectionVideos     = "videos"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Record is a stored document: an identifier, its owner, and the JSON payload.
type Record struct {
	ID     string
	UserID string
	Data   []byte
}

// WriteKind discriminates batched write operations.
type WriteKind string

const (
	WriteSet    WriteKind = "set"
	WriteDelete WriteKind = "delete"
)

// WriteOp is a single mutation inside a batch. Data is ignored for deletes.
type WriteOp struct {
	Kind       WriteKind
	Collection string
	ID         string
	UserID     string
	Data       []byte
}

// Store is the document store consumed by the collection services.
type Store interface {
	// QueryByOwner reads all records in a collection scoped to a user.
	QueryByOwner(ctx context.Context, collection, userID string) ([]Record, error)

	// Get retrieves a single record by collection and id.
	Get(ctx context.Context, collection, id string) (*Record, error)

	// BatchWrite atomically applies a list of mutations: either every
	// operation takes effect or none do.
	BatchWrite(ctx context.Context, ops []WriteOp) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}
