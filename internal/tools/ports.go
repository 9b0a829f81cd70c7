package tools

import (
	"context"

	"ledgerd/internal/core"
	"ledgerd/internal/ledger"
)

// Ports consumed by the tool surface.
type (
	// Authenticator resolves bearer tokens to accounts.
	Authenticator interface {
		Authenticate(ctx context.Context, apiKey string) (core.Account, error)
	}

	// CredentialStore registers tenants and rotates their keys.
	CredentialStore interface {
		Register(ctx context.Context, email, name, password string) (core.Account, error)
		RotateKey(ctx context.Context, email, password string) (core.Account, error)
	}

	// Ledger holds the per-account expense operations.
	Ledger interface {
		Add(ctx context.Context, p ledger.AddParams) (core.Expense, error)
		List(ctx context.Context, accountID string, start, end core.Date) ([]core.Expense, error)
		Summarize(ctx context.Context, accountID string, start, end core.Date, category string) (core.Summary, error)
		Delete(ctx context.Context, accountID string, id int64) error
	}
)
