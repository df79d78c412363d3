package ledger

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/store"

	"github.com/shopspring/decimal"
)

// IncomeInput carries the caller-supplied fields of a new income record.
// Id and owner are assigned by the repository.
type IncomeInput struct {
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
	Date   core.Date       `json:"date"`
	Note   string          `json:"note"`
}

// IncomePatch is a partial update; nil fields are left unchanged.
type IncomePatch struct {
	Source *string          `json:"source"`
	Amount *decimal.Decimal `json:"amount"`
	Date   *core.Date       `json:"date"`
	Note   *string          `json:"note"`
}

type Incomes struct {
	col collection[core.Income]
}

func NewIncomes(st store.Store, userID int64, notifier Notifier) *Incomes {
	return &Incomes{col: collection[core.Income]{
		key:    store.KeyIncomes,
		st:     st,
		userID: userID,
		seed:   seedIncomes(),
		identify: func(rec core.Income, id, userID int64) core.Income {
			rec.ID = id
			rec.UserID = userID
			return rec
		},
		notifier: notifier,
	}}
}

func (r *Incomes) List(ctx context.Context) ([]core.Income, error) {
	return r.col.List(ctx)
}

func (r *Incomes) Get(ctx context.Context, id int64) (core.Income, bool, error) {
	return r.col.Get(ctx, id)
}

func (r *Incomes) Add(ctx context.Context, in IncomeInput) (core.Income, error) {
	rec := core.Income{Source: in.Source, Amount: in.Amount, Date: in.Date, Note: in.Note}
	if err := rec.Validate(); err != nil {
		return core.Income{}, err
	}
	return r.col.Add(ctx, rec)
}

func (r *Incomes) Update(ctx context.Context, id int64, p IncomePatch) (core.Income, bool, error) {
	return r.col.Update(ctx, id, func(cur core.Income) (core.Income, error) {
		if p.Source != nil {
			cur.Source = *p.Source
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
			return core.Income{}, err
		}
		return cur, nil
	})
}

func (r *Incomes) Delete(ctx context.Context, id int64) (bool, error) {
	return r.col.Delete(ctx, id)
}
