package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"ledgerd/internal/core"
)

// ExpenseStore is the persistence the ledger needs. Every method is
// scoped by account id; the store owns the ownership checks.
type ExpenseStore interface {
	InsertExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	ListExpenses(ctx context.Context, accountID string, start, end core.Date, category string) ([]core.Expense, error)
	DeleteExpense(ctx context.Context, accountID string, id int64) error
}

// Service holds the expense operations behind the access gate. Account
// ids arrive only from authenticated lookups, never from callers.
type Service struct {
	store ExpenseStore
}

func NewService(store ExpenseStore) *Service {
	return &Service{store: store}
}

// AddParams carries one new ledger entry.
type AddParams struct {
	AccountID   string
	Date        core.Date
	Amount      decimal.Decimal
	Category    string
	Subcategory string
	Note        string
}

// Add validates and stores a new expense, returning it with its assigned
// id. The category is free text; the advisory taxonomy never rejects.
func (s *Service) Add(ctx context.Context, p AddParams) (core.Expense, error) {
	e := core.Expense{
		AccountID:   p.AccountID,
		Date:        p.Date,
		Amount:      p.Amount,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Note:        p.Note,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	stored, err := s.store.InsertExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}
	return stored, nil
}

// List returns the account's expenses in the inclusive range, newest
// first. An inverted range is empty, not an error.
func (s *Service) List(ctx context.Context, accountID string, start, end core.Date) ([]core.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx, accountID, start, end, "")
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Summarize aggregates the same rows List returns for the range
// (optionally narrowed to one category) into exact per-category totals.
// Sums run on decimals in process; summing the stored text in SQL would
// go through floats and drift.
func (s *Service) Summarize(ctx context.Context, accountID string, start, end core.Date, category string) (core.Summary, error) {
	expenses, err := s.store.ListExpenses(ctx, accountID, start, end, category)
	if err != nil {
		return core.Summary{}, fmt.Errorf("summarize expenses: %w", err)
	}

	type agg struct {
		total decimal.Decimal
		count int64
	}
	groups := make(map[string]*agg)
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
		g, ok := groups[e.Category]
		if !ok {
			g = &agg{}
			groups[e.Category] = g
		}
		g.total = g.total.Add(e.Amount)
		g.count++
	}

	breakdown := make([]core.CategoryTotal, 0, len(groups))
	for name, g := range groups {
		breakdown = append(breakdown, core.CategoryTotal{
			Category: name,
			Total:    g.total,
			Count:    g.count,
		})
	}
	// Largest total first; equal totals order by category name so the
	// output is deterministic.
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Total.Equal(breakdown[j].Total) {
			return breakdown[i].Total.GreaterThan(breakdown[j].Total)
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return core.Summary{Total: total, Breakdown: breakdown}, nil
}

// Delete removes one expense if and only if the account owns it. Absent
// and not-owned are indistinguishable to the caller.
func (s *Service) Delete(ctx context.Context, accountID string, id int64) error {
	if err := s.store.DeleteExpense(ctx, accountID, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
