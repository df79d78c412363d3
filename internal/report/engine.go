// Package report is the aggregation engine: it folds repository
// snapshots into the summary, time-series, and breakdown view-models
// consumed by the dashboard and reports surfaces. The engine is
// stateless; every call re-reads the repositories.
package report

import (
	"context"
	"fmt"
	"sort"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

// RecommendedSavingsRate is the share of income the savings progress
// figure measures against.
const RecommendedSavingsRate = 0.2

type (
	IncomeReader interface {
		List(ctx context.Context) ([]core.Income, error)
	}
	ExpenseReader interface {
		List(ctx context.Context) ([]core.Expense, error)
	}
	SavingReader interface {
		List(ctx context.Context) ([]core.Saving, error)
	}
	InvestmentReader interface {
		List(ctx context.Context) ([]core.Investment, error)
	}
	DebtReader interface {
		List(ctx context.Context) ([]core.Debt, error)
	}
)

type Engine struct {
	incomes     IncomeReader
	expenses    ExpenseReader
	savings     SavingReader
	investments InvestmentReader
	debts       DebtReader
}

func NewEngine(incomes IncomeReader, expenses ExpenseReader, savings SavingReader, investments InvestmentReader, debts DebtReader) *Engine {
	return &Engine{
		incomes:     incomes,
		expenses:    expenses,
		savings:     savings,
		investments: investments,
		debts:       debts,
	}
}

// Summary computes the financial overview. This is the only place the
// net worth formula lives:
//
//	netWorth = (income - expenses) + savings + investments - debts
func (e *Engine) Summary(ctx context.Context) (core.FinancialSummary, error) {
	var s core.FinancialSummary

	incomes, err := e.incomes.List(ctx)
	if err != nil {
		return s, fmt.Errorf("list incomes: %w", err)
	}
	expenses, err := e.expenses.List(ctx)
	if err != nil {
		return s, fmt.Errorf("list expenses: %w", err)
	}
	savings, err := e.savings.List(ctx)
	if err != nil {
		return s, fmt.Errorf("list savings: %w", err)
	}
	investments, err := e.investments.List(ctx)
	if err != nil {
		return s, fmt.Errorf("list investments: %w", err)
	}
	debts, err := e.debts.List(ctx)
	if err != nil {
		return s, fmt.Errorf("list debts: %w", err)
	}

	for _, r := range incomes {
		s.TotalIncome = s.TotalIncome.Add(r.Amount)
	}
	for _, r := range expenses {
		s.TotalExpenses = s.TotalExpenses.Add(r.Amount)
	}
	for _, r := range savings {
		s.TotalSavings = s.TotalSavings.Add(r.CurrentAmount)
	}
	for _, r := range investments {
		s.TotalInvestments = s.TotalInvestments.Add(r.Amount)
	}
	for _, r := range debts {
		s.TotalDebts = s.TotalDebts.Add(r.Amount)
	}

	s.NetWorth = s.TotalIncome.Sub(s.TotalExpenses).
		Add(s.TotalSavings).
		Add(s.TotalInvestments).
		Sub(s.TotalDebts)

	return s, nil
}

// SavingsProgress measures total savings against the recommended share
// of income. Returns 0 when there is no income or no savings, so the
// figure never divides by zero.
func SavingsProgress(s core.FinancialSummary) core.Percent {
	if s.TotalIncome.IsZero() || s.TotalSavings.IsZero() {
		return 0
	}
	target := s.TotalIncome.Mul(decimal.NewFromFloat(RecommendedSavingsRate))
	pct := s.TotalSavings.Div(target).Mul(decimal.NewFromInt(100))
	return core.Percent(pct.InexactFloat64())
}

// SavingsRate is the saved share of income: (income-expenses)/income.
// Returns 0 on zero income.
func SavingsRate(s core.FinancialSummary) core.Percent {
	if s.TotalIncome.IsZero() {
		return 0
	}
	pct := s.TotalIncome.Sub(s.TotalExpenses).
		Div(s.TotalIncome).
		Mul(decimal.NewFromInt(100))
	return core.Percent(pct.InexactFloat64())
}

// MonthlyFlow pairs income and expense totals per calendar month for the
// trend chart, in chronological order.
func (e *Engine) MonthlyFlow(ctx context.Context) ([]core.MonthlyFlow, error) {
	incomes, err := e.incomes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	expenses, err := e.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	incomeBuckets := GroupByMonth(incomes,
		func(r core.Income) core.Date { return r.Date },
		func(r core.Income) decimal.Decimal { return r.Amount })
	expenseBuckets := GroupByMonth(expenses,
		func(r core.Expense) core.Date { return r.Date },
		func(r core.Expense) decimal.Decimal { return r.Amount })

	flows := make(map[periodKey]*core.MonthlyFlow)
	for _, b := range incomeBuckets {
		k := periodKey{year: b.Year, index: b.Month}
		flows[k] = &core.MonthlyFlow{Year: b.Year, Month: b.Month, Label: b.Label, Income: b.Total}
	}
	for _, b := range expenseBuckets {
		k := periodKey{year: b.Year, index: b.Month}
		if f, ok := flows[k]; ok {
			f.Expenses = b.Total
		} else {
			flows[k] = &core.MonthlyFlow{Year: b.Year, Month: b.Month, Label: b.Label, Expenses: b.Total}
		}
	}

	keys := make([]periodKey, 0, len(flows))
	for k := range flows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	out := make([]core.MonthlyFlow, 0, len(keys))
	for _, k := range keys {
		out = append(out, *flows[k])
	}
	return out, nil
}

// CashFlow produces the per-period income/expense/net series of the
// reports page at the requested granularity.
func (e *Engine) CashFlow(ctx context.Context, g Granularity) ([]core.CashFlowEntry, error) {
	incomes, err := e.incomes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	expenses, err := e.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	incomeBuckets := GroupByPeriod(incomes, g,
		func(r core.Income) core.Date { return r.Date },
		func(r core.Income) decimal.Decimal { return r.Amount })
	expenseBuckets := GroupByPeriod(expenses, g,
		func(r core.Expense) core.Date { return r.Date },
		func(r core.Expense) decimal.Decimal { return r.Amount })

	entries := make(map[periodKey]*core.CashFlowEntry)
	for _, b := range incomeBuckets {
		k := periodKey{year: b.Year, index: b.Index}
		entries[k] = &core.CashFlowEntry{Year: b.Year, Index: b.Index, Label: b.Label, Income: b.Total}
	}
	for _, b := range expenseBuckets {
		k := periodKey{year: b.Year, index: b.Index}
		if entry, ok := entries[k]; ok {
			entry.Expense = b.Total
		} else {
			entries[k] = &core.CashFlowEntry{Year: b.Year, Index: b.Index, Label: b.Label, Expense: b.Total}
		}
	}

	keys := make([]periodKey, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	out := make([]core.CashFlowEntry, 0, len(keys))
	for _, k := range keys {
		entry := *entries[k]
		entry.Net = entry.Income.Sub(entry.Expense)
		out = append(out, entry)
	}
	return out, nil
}

// IncomeBySource breaks income down by source in first-seen order.
func (e *Engine) IncomeBySource(ctx context.Context) ([]core.CategoryTotal, error) {
	incomes, err := e.incomes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	return GroupByCategory(incomes,
		func(r core.Income) string { return r.Source },
		func(r core.Income) decimal.Decimal { return r.Amount }), nil
}

// ExpensesByCategory breaks expenses down by category in first-seen
// order.
func (e *Engine) ExpensesByCategory(ctx context.Context) ([]core.CategoryTotal, error) {
	expenses, err := e.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return GroupByCategory(expenses,
		func(r core.Expense) string { return r.Category },
		func(r core.Expense) decimal.Decimal { return r.Amount }), nil
}

// GoalProgress reports the funded share of each savings goal, clamped to
// 0-100 for display.
func (e *Engine) GoalProgress(ctx context.Context) ([]core.GoalProgress, error) {
	savings, err := e.savings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list savings: %w", err)
	}

	out := make([]core.GoalProgress, 0, len(savings))
	for _, goal := range savings {
		var pct float64
		if goal.TargetAmount.IsPositive() {
			pct = goal.CurrentAmount.Div(goal.TargetAmount).
				Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		out = append(out, core.GoalProgress{
			ID:       goal.ID,
			GoalName: goal.GoalName,
			Target:   goal.TargetAmount,
			Current:  goal.CurrentAmount,
			Percent:  core.Percent(pct),
		})
	}
	return out, nil
}
