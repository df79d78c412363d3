package ledger

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/store"

	"github.com/shopspring/decimal"
)

type DebtInput struct {
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest"`
	DueDate      core.Date       `json:"dueDate"`
}

// DebtPatch is a partial update; nil fields are left unchanged.
type DebtPatch struct {
	Type         *string          `json:"type"`
	Amount       *decimal.Decimal `json:"amount"`
	InterestRate *decimal.Decimal `json:"interest"`
	DueDate      *core.Date       `json:"dueDate"`
}

type Debts struct {
	col collection[core.Debt]
}

func NewDebts(st store.Store, userID int64, notifier Notifier) *Debts {
	return &Debts{col: collection[core.Debt]{
		key:    store.KeyDebts,
		st:     st,
		userID: userID,
		seed:   seedDebts(),
		identify: func(rec core.Debt, id, userID int64) core.Debt {
			rec.ID = id
			rec.UserID = userID
			return rec
		},
		notifier: notifier,
	}}
}

func (r *Debts) List(ctx context.Context) ([]core.Debt, error) {
	return r.col.List(ctx)
}

func (r *Debts) Get(ctx context.Context, id int64) (core.Debt, bool, error) {
	return r.col.Get(ctx, id)
}

func (r *Debts) Add(ctx context.Context, in DebtInput) (core.Debt, error) {
	rec := core.Debt{Type: in.Type, Amount: in.Amount, InterestRate: in.InterestRate, DueDate: in.DueDate}
	if err := rec.Validate(); err != nil {
		return core.Debt{}, err
	}
	return r.col.Add(ctx, rec)
}

func (r *Debts) Update(ctx context.Context, id int64, p DebtPatch) (core.Debt, bool, error) {
	return r.col.Update(ctx, id, func(cur core.Debt) (core.Debt, error) {
		if p.Type != nil {
			cur.Type = *p.Type
		}
		if p.Amount != nil {
			cur.Amount = *p.Amount
		}
		if p.InterestRate != nil {
			cur.InterestRate = *p.InterestRate
		}
		if p.DueDate != nil {
			cur.DueDate = *p.DueDate
		}
		if err := cur.Validate(); err != nil {
			return core.Debt{}, err
		}
		return cur, nil
	})
}

func (r *Debts) Delete(ctx context.Context, id int64) (bool, error) {
	return r.col.Delete(ctx, id)
}
