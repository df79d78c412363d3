package ledger

import (
	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

// DefaultUserID is the seeded account used when no user id is
// configured.
const DefaultUserID int64 = 1

// Seed collections returned by Load when a key has never been written.
// They mirror the app's demo dataset so a fresh install shows a
// populated dashboard.

func seedUsers() []core.User {
	return []core.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com"},
	}
}

func seedIncomes() []core.Income {
	return []core.Income{
		{ID: 1, UserID: 1, Source: "Salary", Amount: decimal.NewFromInt(5000), Date: core.NewDate(2023, 4, 1), Note: "Monthly salary"},
		{ID: 2, UserID: 1, Source: "Freelance", Amount: decimal.NewFromInt(1200), Date: core.NewDate(2023, 4, 15), Note: "Web design project"},
		{ID: 3, UserID: 1, Source: "Investments", Amount: decimal.NewFromInt(450), Date: core.NewDate(2023, 4, 22), Note: "Dividend payment"},
	}
}

func seedExpenses() []core.Expense {
	return []core.Expense{
		{ID: 1, UserID: 1, Category: "Rent", Amount: decimal.NewFromInt(1500), Date: core.NewDate(2023, 4, 5), Note: "Monthly rent"},
		{ID: 2, UserID: 1, Category: "Groceries", Amount: decimal.NewFromInt(350), Date: core.NewDate(2023, 4, 10), Note: "Weekly groceries"},
		{ID: 3, UserID: 1, Category: "Utilities", Amount: decimal.NewFromInt(200), Date: core.NewDate(2023, 4, 15), Note: "Electricity and water"},
		{ID: 4, UserID: 1, Category: "Entertainment", Amount: decimal.NewFromInt(120), Date: core.NewDate(2023, 4, 20), Note: "Movie and dinner"},
	}
}

func seedSavings() []core.Saving {
	return []core.Saving{
		{ID: 1, UserID: 1, GoalName: "Emergency Fund", TargetAmount: decimal.NewFromInt(10000), CurrentAmount: decimal.NewFromInt(6000)},
		{ID: 2, UserID: 1, GoalName: "Vacation", TargetAmount: decimal.NewFromInt(3000), CurrentAmount: decimal.NewFromInt(1500)},
	}
}

func seedInvestments() []core.Investment {
	return []core.Investment{
		{ID: 1, UserID: 1, Name: "S&P 500 ETF", Type: "ETF", Amount: decimal.NewFromInt(5000), Date: core.NewDate(2023, 1, 15), Returns: decimal.NewFromFloat(8.5)},
		{ID: 2, UserID: 1, Name: "Amazon Stock", Type: "Stock", Amount: decimal.NewFromInt(2000), Date: core.NewDate(2023, 2, 10), Returns: decimal.NewFromFloat(12.3)},
	}
}

func seedDebts() []core.Debt {
	return []core.Debt{
		{ID: 1, UserID: 1, Type: "Student Loan", Amount: decimal.NewFromInt(15000), InterestRate: decimal.NewFromFloat(4.5), DueDate: core.NewDate(2025, 6, 1)},
		{ID: 2, UserID: 1, Type: "Credit Card", Amount: decimal.NewFromInt(2500), InterestRate: decimal.NewFromFloat(18.9), DueDate: core.NewDate(2023, 5, 15)},
	}
}
