// Package store implements data access against the remote tree-structured
// database. Each collection is a top-level node whose children are records
// keyed by store-generated push ids. The Collection type layers uniform CRUD
// on top of the raw Store interface.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an id-addressed read, update or delete targets
// an absent node. Handlers should translate this into an HTTP 404 response.
// The wrapping message always names the id field and the offending id.
var ErrNotFound = errors.New("was not found")

// Record is a single stored object. The store is schemaless: fields are
// whatever was written, plus the public id field injected by Collection.
type Record = map[string]any

// Store is the minimal surface required from the remote database.
//
// Get decodes the node at path into v; an absent node is not an error and
// leaves v untouched. Update performs a partial merge write, preserving fields
// not named in the map. Push allocates a new globally unique child key under
// path without writing any data.
type Store interface {
	Get(ctx context.Context, path string, v any) error
	Set(ctx context.Context, path string, v any) error
	Update(ctx context.Context, path string, fields map[string]any) error
	Delete(ctx context.Context, path string) error
	Push(ctx context.Context, path string) (string, error)
}
