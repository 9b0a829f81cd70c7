package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledgerd/internal/core"
)

const (
	insertExpenseSQL = `INSERT INTO expenses (account_id, date, amount, category, subcategory, note)
VALUES (?, ?, ?, ?, ?, ?)`

	listExpensesSQL = `SELECT id, account_id, date, amount, category, subcategory, note
FROM expenses
WHERE account_id = ? AND date BETWEEN ? AND ?
ORDER BY date DESC, id DESC`

	listExpensesByCategorySQL = `SELECT id, account_id, date, amount, category, subcategory, note
FROM expenses
WHERE account_id = ? AND date BETWEEN ? AND ? AND category = ?
ORDER BY date DESC, id DESC`

	deleteExpenseSQL = `DELETE FROM expenses WHERE id = ? AND account_id = ?`
)

// InsertExpense stores a validated expense and its created event in one
// transaction, returning the expense with its assigned id.
func (r *SQLiteRepository) InsertExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Expense{}, fmt.Errorf("begin insert expense: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertExpenseSQL,
		e.AccountID, e.Date.String(), e.Amount, e.Category, e.Subcategory, e.Note)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense id: %w", err)
	}
	e.ID = id

	if _, err := tx.ExecContext(ctx, insertEventSQL,
		core.EventExpenseCreated, e.ID, e.AccountID, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return core.Expense{}, fmt.Errorf("insert created event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Expense{}, fmt.Errorf("commit insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"expense_id", e.ID,
		"account_id", e.AccountID,
		"date", e.Date.String(),
		"category", e.Category)
	return e, nil
}

// ListExpenses returns the account's rows in the inclusive date range,
// newest date first, then newest id first. An empty category means all
// categories; an inverted range matches nothing.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, accountID string, start, end core.Date, category string) ([]core.Expense, error) {
	query := listExpensesSQL
	args := []any{accountID, start.String(), end.String()}
	if category != "" {
		query = listExpensesByCategorySQL
		args = append(args, category)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			dateStr string
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &dateStr, &e.Amount, &e.Category, &e.Subcategory, &e.Note); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", dateStr, err)
		}
		e.Date = d
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes the row only when it belongs to the account. The
// conditional delete and the deleted event commit together; zero rows
// affected maps to core.ErrExpenseNotFound.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, accountID string, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete expense: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, deleteExpenseSQL, id, accountID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows: %w", err)
	}
	if n == 0 {
		return core.ErrExpenseNotFound
	}

	if _, err := tx.ExecContext(ctx, insertEventSQL,
		core.EventExpenseDeleted, id, accountID, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("insert deleted event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "expense_id", id, "account_id", accountID)
	return nil
}
