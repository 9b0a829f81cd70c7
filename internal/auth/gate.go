package auth

import (
	"context"
	"fmt"

	"ledgerd/internal/core"
)

// KeyLookup resolves bearer tokens to accounts.
type KeyLookup interface {
	Lookup(ctx context.Context, apiKey string) (core.Account, error)
}

// Gate is the single path by which a caller identity enters the ledger.
// Nothing downstream accepts a caller-supplied account id.
type Gate struct {
	keys KeyLookup
}

func NewGate(keys KeyLookup) *Gate {
	return &Gate{keys: keys}
}

// Authenticate resolves a bearer token to its account. An empty token
// fails fast without touching storage and with a different message than
// an unknown token, so callers can tell missing input from wrong input.
// Storage failures pass through as themselves, never as a credential
// problem.
func (g *Gate) Authenticate(ctx context.Context, apiKey string) (core.Account, error) {
	if apiKey == "" {
		return core.Account{}, core.ErrKeyRequired
	}
	a, err := g.keys.Lookup(ctx, apiKey)
	if err != nil {
		return core.Account{}, fmt.Errorf("authenticate: %w", err)
	}
	return a, nil
}
