package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ledgerd/internal/core"
)

func addExpense(t *testing.T, repo *SQLiteRepository, accountID, date, amount, category string) core.Expense {
	t.Helper()
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	e, err := repo.InsertExpense(context.Background(), core.Expense{
		AccountID: accountID,
		Date:      d,
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
	})
	if err != nil {
		t.Fatalf("insert expense: %v", err)
	}
	return e
}

func listRange(t *testing.T, repo *SQLiteRepository, accountID, start, end, category string) []core.Expense {
	t.Helper()
	s, err := core.ParseDate(start)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	e, err := core.ParseDate(end)
	if err != nil {
		t.Fatalf("parse end: %v", err)
	}
	got, err := repo.ListExpenses(context.Background(), accountID, s, e, category)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	return got
}

func TestInsertAndListExpenses(t *testing.T) {
	repo := newTestRepo(t)
	a := makeAccount(t, repo, "alice@example.com")

	addExpense(t, repo, a.ID, "2024-01-05", "45.50", "Food & Dining")
	addExpense(t, repo, a.ID, "2024-01-10", "12.00", "Transportation")

	got := listRange(t, repo, a.ID, "2024-01-01", "2024-01-31", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(got))
	}
	if got[0].Date.String() != "2024-01-10" || got[1].Date.String() != "2024-01-05" {
		t.Fatalf("wrong order: %s then %s", got[0].Date, got[1].Date)
	}
	if !got[0].Amount.Equal(decimal.RequireFromString("12.00")) {
		t.Fatalf("amount round-trip lost precision: %s", got[0].Amount)
	}
	if got[1].Amount.String() != "45.50" {
		t.Fatalf("amount text changed: %s", got[1].Amount)
	}
}

func TestListSameDayOrderedByNewestID(t *testing.T) {
	repo := newTestRepo(t)
	a := makeAccount(t, repo, "sameday@example.com")

	first := addExpense(t, repo, a.ID, "2024-03-01", "1.00", "Other")
	second := addExpense(t, repo, a.ID, "2024-03-01", "2.00", "Other")

	got := listRange(t, repo, a.ID, "2024-03-01", "2024-03-01", "")
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("same-day rows should come newest id first: %+v", got)
	}
}

func TestListInvertedRangeIsEmpty(t *testing.T) {
	repo := newTestRepo(t)
	a := makeAccount(t, repo, "inverted@example.com")
	addExpense(t, repo, a.ID, "2024-01-05", "5.00", "Other")

	got := listRange(t, repo, a.ID, "2024-02-01", "2024-01-01", "")
	if len(got) != 0 {
		t.Fatalf("inverted range should match nothing, got %d rows", len(got))
	}
}

func TestListCategoryFilter(t *testing.T) {
	repo := newTestRepo(t)
	a := makeAccount(t, repo, "filter@example.com")
	addExpense(t, repo, a.ID, "2024-01-05", "45.50", "Food & Dining")
	addExpense(t, repo, a.ID, "2024-01-10", "12.00", "Transportation")

	got := listRange(t, repo, a.ID, "2024-01-01", "2024-01-31", "Transportation")
	if len(got) != 1 || got[0].Category != "Transportation" {
		t.Fatalf("category filter broken: %+v", got)
	}

	if got := listRange(t, repo, a.ID, "2024-01-01", "2024-01-31", "Travel"); len(got) != 0 {
		t.Fatalf("unmatched category should return nothing, got %d", len(got))
	}
}

func TestTenantIsolation(t *testing.T) {
	repo := newTestRepo(t)
	alice := makeAccount(t, repo, "alice2@example.com")
	bob := makeAccount(t, repo, "bob2@example.com")

	mine := addExpense(t, repo, alice.ID, "2024-01-05", "45.50", "Food & Dining")
	addExpense(t, repo, bob.ID, "2024-01-05", "9.99", "Shopping")

	got := listRange(t, repo, alice.ID, "2024-01-01", "2024-01-31", "")
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("listing leaked rows across accounts: %+v", got)
	}
}

func TestDeleteExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	a := makeAccount(t, repo, "delete@example.com")
	e := addExpense(t, repo, a.ID, "2024-01-05", "45.50", "Food & Dining")

	if err := repo.DeleteExpense(ctx, a.ID, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := listRange(t, repo, a.ID, "2024-01-01", "2024-01-31", ""); len(got) != 0 {
		t.Fatalf("expense should be gone, got %d rows", len(got))
	}

	err := repo.DeleteExpense(ctx, a.ID, e.ID)
	if !errors.Is(err, core.ErrExpenseNotFound) {
		t.Fatalf("second delete should fail with ErrExpenseNotFound, got %v", err)
	}
}

func TestDeleteOtherTenantsExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	alice := makeAccount(t, repo, "alice3@example.com")
	bob := makeAccount(t, repo, "bob3@example.com")
	e := addExpense(t, repo, alice.ID, "2024-01-05", "45.50", "Food & Dining")

	err := repo.DeleteExpense(ctx, bob.ID, e.ID)
	if !errors.Is(err, core.ErrExpenseNotFound) {
		t.Fatalf("cross-tenant delete should fail with ErrExpenseNotFound, got %v", err)
	}

	if got := listRange(t, repo, alice.ID, "2024-01-01", "2024-01-31", ""); len(got) != 1 {
		t.Fatalf("row should survive a cross-tenant delete, got %d rows", len(got))
	}
}

func TestExpenseIDsMonotonic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	a := makeAccount(t, repo, "mono@example.com")

	first := addExpense(t, repo, a.ID, "2024-01-05", "1.00", "Other")
	if err := repo.DeleteExpense(ctx, a.ID, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	second := addExpense(t, repo, a.ID, "2024-01-06", "2.00", "Other")
	if second.ID <= first.ID {
		t.Fatalf("ids must not be reused: first=%d second=%d", first.ID, second.ID)
	}
}

func TestOutboxEvents(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	a := makeAccount(t, repo, "outbox@example.com")

	e := addExpense(t, repo, a.ID, "2024-01-05", "45.50", "Food & Dining")
	if err := repo.DeleteExpense(ctx, a.ID, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	events, err := repo.UnpublishedEvents(ctx, 10)
	if err != nil {
		t.Fatalf("unpublished events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected created+deleted events, got %d", len(events))
	}
	if events[0].Kind != core.EventExpenseCreated || events[1].Kind != core.EventExpenseDeleted {
		t.Fatalf("wrong kinds in order: %q, %q", events[0].Kind, events[1].Kind)
	}
	for _, ev := range events {
		if ev.ExpenseID != e.ID || ev.AccountID != a.ID {
			t.Fatalf("event carries wrong references: %+v", ev)
		}
		if ev.OccurredAt.IsZero() || ev.PublishedAt != nil {
			t.Fatalf("fresh event should be unpublished with a timestamp: %+v", ev)
		}
	}

	if err := repo.MarkEventPublished(ctx, events[0].ID); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	events, err = repo.UnpublishedEvents(ctx, 10)
	if err != nil {
		t.Fatalf("unpublished events after mark: %v", err)
	}
	if len(events) != 1 || events[0].Kind != core.EventExpenseDeleted {
		t.Fatalf("published event should drop out of the sweep: %+v", events)
	}
}
