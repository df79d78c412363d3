// Package ledger provides the user-scoped repositories over the record
// store. Each repository is a thin CRUD layer: reads filter the stored
// collection to the owning user, writes go through a load-mutate-save
// cycle guarded by a per-collection mutex.
package ledger

import (
	"context"
	"sync"

	"fintrack/internal/store"
)

// Record is any ledger entity carried by a collection.
type Record interface {
	RecordID() int64
	RecordOwner() int64
}

// Change operations reported to a Notifier.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Notifier receives change events after a successful write. A nil
// Notifier disables notifications.
type Notifier interface {
	RecordChanged(ctx context.Context, collection, op string, id int64)
}

// collection implements the shared load-mutate-save cycle for one
// storage key. Writes operate on the raw stored collection, so records
// owned by other users survive a save (the stored collection may hold
// multiple users' data).
type collection[T Record] struct {
	key      string
	st       store.Store
	userID   int64
	seed     []T
	identify func(rec T, id, userID int64) T
	notifier Notifier

	// Serializes read-modify-write cycles on this key.
	mu sync.Mutex
}

func (c *collection[T]) loadAll(ctx context.Context) ([]T, error) {
	return store.LoadRecords(ctx, c.st, c.key, c.seed)
}

// List returns the current user's records in stored (insertion) order.
func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	all, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]T, 0, len(all))
	for _, rec := range all {
		if rec.RecordOwner() == c.userID {
			mine = append(mine, rec)
		}
	}
	return mine, nil
}

// Get returns the current user's record with the given id, and whether
// it exists.
func (c *collection[T]) Get(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	mine, err := c.List(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, rec := range mine {
		if rec.RecordID() == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Add assigns the next id and the owning user, appends the record, and
// persists the whole collection. Ids stay unique across all owners of
// the collection: the next id is one past the maximum stored id.
func (c *collection[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.loadAll(ctx)
	if err != nil {
		return zero, err
	}

	var next int64 = 1
	for _, r := range all {
		if r.RecordID() >= next {
			next = r.RecordID() + 1
		}
	}

	rec = c.identify(rec, next, c.userID)
	all = append(all, rec)
	if err := store.SaveRecords(ctx, c.st, c.key, all); err != nil {
		return zero, err
	}

	c.notify(ctx, OpAdd, next)
	return rec, nil
}

// Update applies fn to the matching record and persists the collection.
// The second return is false when the current user has no record with
// that id; this is the not-found sentinel, not an error.
func (c *collection[T]) Update(ctx context.Context, id int64, fn func(T) (T, error)) (T, bool, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.loadAll(ctx)
	if err != nil {
		return zero, false, err
	}

	idx := -1
	for i, rec := range all {
		if rec.RecordID() == id && rec.RecordOwner() == c.userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return zero, false, nil
	}

	updated, err := fn(all[idx])
	if err != nil {
		return zero, false, err
	}
	// Identity is immutable regardless of what fn produced.
	updated = c.identify(updated, id, c.userID)

	all[idx] = updated
	if err := store.SaveRecords(ctx, c.st, c.key, all); err != nil {
		return zero, false, err
	}

	c.notify(ctx, OpUpdate, id)
	return updated, true, nil
}

// Delete removes the matching record and reports whether one was
// removed. Deleting an unknown id leaves the collection untouched.
func (c *collection[T]) Delete(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.loadAll(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i, rec := range all {
		if rec.RecordID() == id && rec.RecordOwner() == c.userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	all = append(all[:idx], all[idx+1:]...)
	if err := store.SaveRecords(ctx, c.st, c.key, all); err != nil {
		return false, err
	}

	c.notify(ctx, OpDelete, id)
	return true, nil
}

func (c *collection[T]) notify(ctx context.Context, op string, id int64) {
	if c.notifier != nil {
		c.notifier.RecordChanged(ctx, c.key, op, id)
	}
}
