package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ledgerd/internal/core"
)

const (
	insertAccountSQL = `INSERT INTO accounts (id, email, name, password_hash, salt, api_key, registered_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	accountByEmailSQL = `SELECT id, email, name, password_hash, salt, api_key, registered_at, key_rotated_at
FROM accounts WHERE email = ?`

	accountByKeySQL = `SELECT id, email, name, password_hash, salt, api_key, registered_at, key_rotated_at
FROM accounts WHERE api_key = ?`

	rotateKeySQL = `UPDATE accounts SET api_key = ?, key_rotated_at = ? WHERE id = ?`
)

// CreateAccount persists a new account. The caller normalizes the email;
// the UNIQUE constraint decides duplicate races, mapped to
// core.ErrEmailTaken.
func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) error {
	_, err := r.db.ExecContext(ctx, insertAccountSQL,
		a.ID, a.Email, a.Name, a.PasswordHash, a.Salt, a.APIKey,
		a.RegisteredAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err, "accounts.email") {
			return core.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}

	slog.InfoContext(ctx, "Account created", "account_id", a.ID)
	return nil
}

// AccountByEmail loads an account by normalized email.
func (r *SQLiteRepository) AccountByEmail(ctx context.Context, email string) (core.Account, error) {
	a, err := r.scanAccount(r.db.QueryRowContext(ctx, accountByEmailSQL, email))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, core.ErrEmailNotFound
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("select account by email: %w", err)
	}
	return a, nil
}

// AccountByKey loads the account carrying exactly this API key.
func (r *SQLiteRepository) AccountByKey(ctx context.Context, apiKey string) (core.Account, error) {
	a, err := r.scanAccount(r.db.QueryRowContext(ctx, accountByKeySQL, apiKey))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, core.ErrInvalidKey
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("select account by key: %w", err)
	}
	return a, nil
}

// RotateAPIKey atomically replaces the stored key. Concurrent rotations
// both succeed; the later commit wins and exactly one key stays valid.
func (r *SQLiteRepository) RotateAPIKey(ctx context.Context, accountID, newKey string, rotatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, rotateKeySQL,
		newKey, rotatedAt.UTC().Format(time.RFC3339Nano), accountID)
	if err != nil {
		return fmt.Errorf("update api key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update api key rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update api key: account %s not found", accountID)
	}

	slog.InfoContext(ctx, "API key rotated", "account_id", accountID)
	return nil
}

func (r *SQLiteRepository) scanAccount(row *sql.Row) (core.Account, error) {
	var (
		a         core.Account
		regAt     string
		rotatedAt sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Salt, &a.APIKey, &regAt, &rotatedAt); err != nil {
		return core.Account{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, regAt)
	if err != nil {
		return core.Account{}, fmt.Errorf("parse registered_at: %w", err)
	}
	a.RegisteredAt = t

	if rotatedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, rotatedAt.String)
		if err != nil {
			return core.Account{}, fmt.Errorf("parse key_rotated_at: %w", err)
		}
		a.KeyRotatedAt = t
	}
	return a, nil
}
