package store

import (
	"context"
	"fmt"
	"time"
)

// Collection provides uniform CRUD over one collection of the tree store.
// It is configured with the collection name and the public id field injected
// into returned records ("user_id", "movie_id", ...). Instances hold no other
// state and are safe to share across concurrent requests.
type Collection struct {
	store   Store
	name    string
	idField string
}

func NewCollection(s Store, name, idField string) *Collection {
	return &Collection{store: s, name: name, idField: idField}
}

// IDField returns the name of the public id field for this collection.
func (c *Collection) IDField() string { return c.idField }

func (c *Collection) path(id string) string { return c.name + "/" + id }

func (c *Collection) notFound(id string) error {
	return fmt.Errorf("%s == %s %w", c.idField, id, ErrNotFound)
}

// GetByID fetches the record stored under id and injects the id field into it.
func (c *Collection) GetByID(ctx context.Context, id string) (Record, error) {
	var rec Record
	if err := c.store.Get(ctx, c.path(id), &rec); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.name, err)
	}
	if rec == nil {
		return nil, c.notFound(id)
	}
	rec[c.idField] = id
	return rec, nil
}

// Exists reports whether a record is stored under id. Store failures are
// still returned as errors; only a clean miss yields (false, nil).
func (c *Collection) Exists(ctx context.Context, id string) (bool, error) {
	var rec Record
	if err := c.store.Get(ctx, c.path(id), &rec); err != nil {
		return false, fmt.Errorf("fetch %s: %w", c.name, err)
	}
	return rec != nil, nil
}

// GetAll returns every non-empty record in the collection, each with the id
// field injected. Order follows store iteration order and is not guaranteed
// stable. An empty or absent collection yields an empty slice.
func (c *Collection) GetAll(ctx context.Context) ([]Record, error) {
	var nodes map[string]Record
	if err := c.store.Get(ctx, c.name, &nodes); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.name, err)
	}
	out := make([]Record, 0, len(nodes))
	for key, fields := range nodes {
		if len(fields) == 0 {
			continue
		}
		rec := Record{c.idField: key}
		for k, v := range fields {
			rec[k] = v
		}
		out = append(out, rec)
	}
	return out, nil
}

// GetByField returns the records whose field equals value, with linear-scan
// semantics: no index is assumed and duplicates are kept.
func (c *Collection) GetByField(ctx context.Context, field string, value any) ([]Record, error) {
	all, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(all))
	for _, rec := range all {
		if rec[field] == value {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Create stamps created_at, writes fields under a fresh push key and reads the
// node back so any store-side transformation shows up in the returned record.
func (c *Collection) Create(ctx context.Context, fields Record) (Record, error) {
	fields["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)

	key, err := c.store.Push(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("push %s: %w", c.name, err)
	}
	if err := c.store.Set(ctx, c.path(key), fields); err != nil {
		return nil, fmt.Errorf("write %s: %w", c.name, err)
	}

	var rec Record
	if err := c.store.Get(ctx, c.path(key), &rec); err != nil {
		return nil, fmt.Errorf("read back %s: %w", c.name, err)
	}
	rec[c.idField] = key
	return rec, nil
}

// Update merges fields into the record stored under id. created_at is
// immutable: whatever the caller sent is replaced by the stored value.
// Fields absent from the map are preserved on the node.
func (c *Collection) Update(ctx context.Context, id string, fields Record) (Record, error) {
	var old Record
	if err := c.store.Get(ctx, c.path(id), &old); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.name, err)
	}
	if old == nil {
		return nil, c.notFound(id)
	}
	fields["created_at"] = old["created_at"]

	if err := c.store.Update(ctx, c.path(id), fields); err != nil {
		return nil, fmt.Errorf("update %s: %w", c.name, err)
	}

	var rec Record
	if err := c.store.Get(ctx, c.path(id), &rec); err != nil {
		return nil, fmt.Errorf("read back %s: %w", c.name, err)
	}
	rec[c.idField] = id
	return rec, nil
}

// Delete removes the record stored under id and returns the pre-delete data
// with the id field injected.
func (c *Collection) Delete(ctx context.Context, id string) (Record, error) {
	var rec Record
	if err := c.store.Get(ctx, c.path(id), &rec); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.name, err)
	}
	if rec == nil {
		return nil, c.notFound(id)
	}
	if err := c.store.Delete(ctx, c.path(id)); err != nil {
		return nil, fmt.Errorf("delete %s: %w", c.name, err)
	}
	rec[c.idField] = id
	return rec, nil
}
