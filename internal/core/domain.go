package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptySource      = errors.New("empty income source")
	ErrEmptyCategory    = errors.New("empty expense category")
	ErrEmptyGoalName    = errors.New("empty goal name")
	ErrEmptyName        = errors.New("empty investment name")
	ErrEmptyType        = errors.New("empty type")
	ErrNegativeInterest = errors.New("interest rate must not be negative")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrOverTarget       = errors.New("current amount exceeds target amount")
)

// ValidationError reports a rejected field on a ledger record. It wraps
// one of the sentinel errors above so callers can match on either.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Date is a calendar date. It marshals as ISO-8601 (YYYY-MM-DD), which is
// also the stored wire form.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Year returns the calendar year.
func (d Date) Year() int { return d.Time.Year() }

// Month returns the calendar month as 1-12.
func (d Date) Month() int { return int(d.Time.Month()) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// User is the account owning ledger records. One user is treated as the
// current user per process.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Income is a single credit to the ledger.
type Income struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"userId"`
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
	Date   Date            `json:"date"`
	Note   string          `json:"note"`
}

// Expense is a single debit from the ledger.
type Expense struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"userId"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     Date            `json:"date"`
	Note     string          `json:"note"`
}

// Saving is a savings goal with its funded amount.
type Saving struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	GoalName      string          `json:"goalName"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// Investment is a held position. Returns is a percentage and may be
// negative.
type Investment struct {
	ID      int64           `json:"id"`
	UserID  int64           `json:"userId"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Date    Date            `json:"date"`
	Returns decimal.Decimal `json:"returns"`
}

// Debt is an outstanding liability.
type Debt struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest"`
	DueDate      Date            `json:"dueDate"`
}

func (i Income) RecordID() int64    { return i.ID }
func (i Income) RecordOwner() int64 { return i.UserID }

func (e Expense) RecordID() int64    { return e.ID }
func (e Expense) RecordOwner() int64 { return e.UserID }

func (s Saving) RecordID() int64    { return s.ID }
func (s Saving) RecordOwner() int64 { return s.UserID }

func (i Investment) RecordID() int64    { return i.ID }
func (i Investment) RecordOwner() int64 { return i.UserID }

func (d Debt) RecordID() int64    { return d.ID }
func (d Debt) RecordOwner() int64 { return d.UserID }

func (i Income) Validate() error {
	if strings.TrimSpace(i.Source) == "" {
		return invalid("source", ErrEmptySource)
	}
	if !i.Amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	if err := i.Date.Validate(); err != nil {
		return invalid("date", err)
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return invalid("category", ErrEmptyCategory)
	}
	if !e.Amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	if err := e.Date.Validate(); err != nil {
		return invalid("date", err)
	}
	return nil
}

func (s Saving) Validate() error {
	if strings.TrimSpace(s.GoalName) == "" {
		return invalid("goalName", ErrEmptyGoalName)
	}
	if !s.TargetAmount.IsPositive() {
		return invalid("targetAmount", ErrInvalidAmount)
	}
	if s.CurrentAmount.IsNegative() {
		return invalid("currentAmount", ErrNegativeAmount)
	}
	if s.CurrentAmount.GreaterThan(s.TargetAmount) {
		return invalid("currentAmount", ErrOverTarget)
	}
	return nil
}

func (i Investment) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return invalid("name", ErrEmptyName)
	}
	if strings.TrimSpace(i.Type) == "" {
		return invalid("type", ErrEmptyType)
	}
	if !i.Amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	if err := i.Date.Validate(); err != nil {
		return invalid("date", err)
	}
	return nil
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Type) == "" {
		return invalid("type", ErrEmptyType)
	}
	if !d.Amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	if d.InterestRate.IsNegative() {
		return invalid("interest", ErrNegativeInterest)
	}
	if err := d.DueDate.Validate(); err != nil {
		return invalid("dueDate", err)
	}
	return nil
}
