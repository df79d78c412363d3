package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage value for display (60.0 means 60%).
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", float64(p))
}

// FinancialSummary is the derived overview of a user's ledger. It is
// recomputed on demand and never persisted.
//
// NetWorth follows the canonical formula
//
//	(TotalIncome - TotalExpenses) + TotalSavings + TotalInvestments - TotalDebts
//
// which is applied in exactly one place (report.Engine.Summary).
type FinancialSummary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalSavings     decimal.Decimal `json:"totalSavings"`
	TotalInvestments decimal.Decimal `json:"totalInvestments"`
	TotalDebts       decimal.Decimal `json:"totalDebts"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}

// MonthBucket is one month's total in a time series. Year and Month carry
// the sort order; Label is only for display.
type MonthBucket struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyFlow pairs income and expenses for one month, feeding the
// income-vs-expense trend chart.
type MonthlyFlow struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryTotal is one bucket of a by-key breakdown (category, source,
// type). Buckets keep first-seen order.
type CategoryTotal struct {
	Key   string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// PeriodTotal is one bucket of a month/quarter/year series. Year and
// Index order the series; Label (e.g. "Q2 2023") is display only.
type PeriodTotal struct {
	Year  int             `json:"year"`
	Index int             `json:"index"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// CashFlowEntry is one period of the cash-flow report.
type CashFlowEntry struct {
	Year    int             `json:"year"`
	Index   int             `json:"index"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// GoalProgress is the funded share of a single savings goal.
type GoalProgress struct {
	ID       int64           `json:"id"`
	GoalName string          `json:"goalName"`
	Target   decimal.Decimal `json:"targetAmount"`
	Current  decimal.Decimal `json:"currentAmount"`
	Percent  Percent         `json:"percent"`
}
