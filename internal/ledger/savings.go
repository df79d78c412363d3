package ledger

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/store"

	"github.com/shopspring/decimal"
)

type SavingInput struct {
	GoalName      string          `json:"goalName"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// SavingPatch is a partial update; nil fields are left unchanged. The
// merged record is re-validated, so a patch cannot push the funded
// amount past the target.
type SavingPatch struct {
	GoalName      *string          `json:"goalName"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
}

type Savings struct {
	col collection[core.Saving]
}

func NewSavings(st store.Store, userID int64, notifier Notifier) *Savings {
	return &Savings{col: collection[core.Saving]{
		key:    store.KeySavings,
		st:     st,
		userID: userID,
		seed:   seedSavings(),
		identify: func(rec core.Saving, id, userID int64) core.Saving {
			rec.ID = id
			rec.UserID = userID
			return rec
		},
		notifier: notifier,
	}}
}

func (r *Savings) List(ctx context.Context) ([]core.Saving, error) {
	return r.col.List(ctx)
}

func (r *Savings) Get(ctx context.Context, id int64) (core.Saving, bool, error) {
	return r.col.Get(ctx, id)
}

func (r *Savings) Add(ctx context.Context, in SavingInput) (core.Saving, error) {
	rec := core.Saving{GoalName: in.GoalName, TargetAmount: in.TargetAmount, CurrentAmount: in.CurrentAmount}
	if err := rec.Validate(); err != nil {
		return core.Saving{}, err
	}
	return r.col.Add(ctx, rec)
}

func (r *Savings) Update(ctx context.Context, id int64, p SavingPatch) (core.Saving, bool, error) {
	return r.col.Update(ctx, id, func(cur core.Saving) (core.Saving, error) {
		if p.GoalName != nil {
			cur.GoalName = *p.GoalName
		}
		if p.TargetAmount != nil {
			cur.TargetAmount = *p.TargetAmount
		}
		if p.CurrentAmount != nil {
			cur.CurrentAmount = *p.CurrentAmount
		}
		if err := cur.Validate(); err != nil {
			return core.Saving{}, err
		}
		return cur, nil
	})
}

func (r *Savings) Delete(ctx context.Context, id int64) (bool, error) {
	return r.col.Delete(ctx, id)
}
