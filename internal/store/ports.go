// Package store defines the key-value port that ledger collections are
// persisted through, plus JSON codec helpers shared by all backends.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Recognized collection keys. A key maps to a JSON array of one record
// type; backends treat the value as opaque bytes.
const (
	KeyUsers       = "users"
	KeyIncomes     = "incomes"
	KeyExpenses    = "expenses"
	KeySavings     = "savings"
	KeyInvestments = "investments"
	KeyDebts       = "debts"
)

// Store is the outbound port for collection persistence. Save fully
// overwrites prior contents under key; there is no merge. Load reports
// ok=false when nothing is stored under key, leaving the caller's
// fallback in effect. Backends perform no validation or schema checking.
type Store interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}

// StorageError wraps a backend or serialization failure so callers can
// distinguish it from validation problems and retry or alert.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
