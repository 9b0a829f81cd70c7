package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format for calendar days.
const DateLayout = "2006-01-02"

// Event kinds recorded in the outbox.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseDeleted = "expense.deleted"
)

type (
	// Date is a calendar day with no time-of-day component.
	Date struct {
		time.Time
	}

	// Account is a registered tenant. PasswordHash and Salt never leave
	// the storage and accounts layers; APIKey is the bearer credential.
	Account struct {
		ID           string
		Email        string
		Name         string
		PasswordHash string
		Salt         string
		APIKey       string
		RegisteredAt time.Time
		KeyRotatedAt time.Time
	}

	// Expense is a single ledger entry owned by one account.
	Expense struct {
		ID          int64
		AccountID   string
		Date        Date
		Amount      decimal.Decimal
		Category    string
		Subcategory string
		Note        string
	}

	// CategoryTotal is one row of a summary breakdown.
	CategoryTotal struct {
		Category string
		Total    decimal.Decimal
		Count    int64
	}

	// Summary aggregates expenses in a date range by category. Total is
	// the exact sum of every included row.
	Summary struct {
		Total     decimal.Decimal
		Breakdown []CategoryTotal
	}

	// Event is an outbox row describing a committed ledger mutation.
	// PublishedAt stays nil until the broker accepted it.
	Event struct {
		ID          int64
		Kind        string
		ExpenseID   int64
		AccountID   string
		OccurredAt  time.Time
		PublishedAt *time.Time
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string, rejecting anything else.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks date and category. The amount is deliberately
// unconstrained in sign: zero and negative entries record refunds and
// corrections.
func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail checks the address shape: a non-empty local part before the
// last "@" and a domain containing a dot. Looser than RFC 5322 on purpose.
func ValidEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
