package store

import (
	"context"
	"encoding/json"
)

// LoadRecords reads the collection stored under key and decodes it.
// When no value exists the fallback is returned verbatim. Decode and
// backend failures surface as StorageError.
func LoadRecords[T any](ctx context.Context, st Store, key string, fallback []T) ([]T, error) {
	raw, ok, err := st.Load(ctx, key)
	if err != nil {
		return nil, &StorageError{Op: "load", Key: key, Err: err}
	}
	if !ok {
		return fallback, nil
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &StorageError{Op: "decode", Key: key, Err: err}
	}
	return records, nil
}

// SaveRecords encodes the collection and overwrites whatever is stored
// under key.
func SaveRecords[T any](ctx context.Context, st Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := st.Save(ctx, key, raw); err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}
	return nil
}
