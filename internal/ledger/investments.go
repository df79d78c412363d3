package ledger

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/store"

	"github.com/shopspring/decimal"
)

type InvestmentInput struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Date    core.Date       `json:"date"`
	Returns decimal.Decimal `json:"returns"`
}

// InvestmentPatch is a partial update; nil fields are left unchanged.
type InvestmentPatch struct {
	Name    *string          `json:"name"`
	Type    *string          `json:"type"`
	Amount  *decimal.Decimal `json:"amount"`
	Date    *core.Date       `json:"date"`
	Returns *decimal.Decimal `json:"returns"`
}

type Investments struct {
	col collection[core.Investment]
}

func NewInvestments(st store.Store, userID int64, notifier Notifier) *Investments {
	return &Investments{col: collection[core.Investment]{
		key:    store.KeyInvestments,
		st:     st,
		userID: userID,
		seed:   seedInvestments(),
		identify: func(rec core.Investment, id, userID int64) core.Investment {
			rec.ID = id
			rec.UserID = userID
			return rec
		},
		notifier: notifier,
	}}
}

func (r *Investments) List(ctx context.Context) ([]core.Investment, error) {
	return r.col.List(ctx)
}

func (r *Investments) Get(ctx context.Context, id int64) (core.Investment, bool, error) {
	return r.col.Get(ctx, id)
}

func (r *Investments) Add(ctx context.Context, in InvestmentInput) (core.Investment, error) {
	rec := core.Investment{Name: in.Name, Type: in.Type, Amount: in.Amount, Date: in.Date, Returns: in.Returns}
	if err := rec.Validate(); err != nil {
		return core.Investment{}, err
	}
	return r.col.Add(ctx, rec)
}

func (r *Investments) Update(ctx context.Context, id int64, p InvestmentPatch) (core.Investment, bool, error) {
	return r.col.Update(ctx, id, func(cur core.Investment) (core.Investment, error) {
		if p.Name != nil {
			cur.Name = *p.Name
		}
		if p.Type != nil {
			cur.Type = *p.Type
		}
		if p.Amount != nil {
			cur.Amount = *p.Amount
		}
		if p.Date != nil {
			cur.Date = *p.Date
		}
		if p.Returns != nil {
			cur.Returns = *p.Returns
		}
		if err := cur.Validate(); err != nil {
			return core.Investment{}, err
		}
		return cur, nil
	})
}

func (r *Investments) Delete(ctx context.Context, id int64) (bool, error) {
	return r.col.Delete(ctx, id)
}
