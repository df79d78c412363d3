package ledger

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/store"

	"github.com/shopspring/decimal"
)

type ExpenseInput struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     core.Date       `json:"date"`
	Note     string          `json:"note"`
}

// ExpensePatch is a partial update; nil fields are left unchanged.
type ExpensePatch struct {
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Date     *core.Date       `json:"date"`
	Note     *string          `json:"note"`
}

type Expenses struct {
	col collection[core.Expense]
}

func NewExpenses(st store.Store, userID int64, notifier Notifier) *Expenses {
	return &Expenses{col: collection[core.Expense]{
		key:    store.KeyExpenses,
		st:     st,
		userID: userID,
		seed:   seedExpenses(),
		identify: func(rec core.Expense, id, userID int64) core.Expense {
			rec.ID = id
			rec.UserID = userID
			return rec
		},
		notifier: notifier,
	}}
}

func (r *Expenses) List(ctx context.Context) ([]core.Expense, error) {
	return r.col.List(ctx)
}

func (r *Expenses) Get(ctx context.Context, id int64) (core.Expense, bool, error) {
	return r.col.Get(ctx, id)
}

func (r *Expenses) Add(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	rec := core.Expense{Category: in.Category, Amount: in.Amount, Date: in.Date, Note: in.Note}
	if err := rec.Validate(); err != nil {
		return core.Expense{}, err
	}
	return r.col.Add(ctx, rec)
}

func (r *Expenses) Update(ctx context.Context, id int64, p ExpensePatch) (core.Expense, bool, error) {
	return r.col.Update(ctx, id, func(cur core.Expense) (core.Expense, error) {
		if p.Category != nil {
			cur.Category = *p.Category
		}
		if p.Amount != nil {
			cur.Amount = *p.Amount
		}
		if p.Date != nil {
			cur.Date = *p.Date
		}
		if p.Note != nil {
			cur.Note = *p.Note
		}
		if err := cur.Validate(); err != nil {
			return core.Expense{}, err
		}
		return cur, nil
	})
}

func (r *Expenses) Delete(ctx context.Context, id int64) (bool, error) {
	return r.col.Delete(ctx, id)
}
