package ledger

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// Users resolves the current user from the users collection. It is
// read-only; account management is out of scope.
type Users struct {
	st     store.Store
	userID int64
}

func NewUsers(st store.Store, userID int64) *Users {
	return &Users{st: st, userID: userID}
}

// Current returns the record for the configured user id. When the stored
// collection has no match the seeded default user is returned, so the
// caller always gets a usable profile.
func (u *Users) Current(ctx context.Context) (core.User, error) {
	users, err := store.LoadRecords(ctx, u.st, store.KeyUsers, seedUsers())
	if err != nil {
		return core.User{}, err
	}
	for _, usr := range users {
		if usr.ID == u.userID {
			return usr, nil
		}
	}
	return seedUsers()[0], nil
}
