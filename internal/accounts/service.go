package accounts

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ledgerd/internal/core"
)

// AccountStore is the persistence the credential store needs.
type AccountStore interface {
	CreateAccount(ctx context.Context, a core.Account) error
	AccountByEmail(ctx context.Context, email string) (core.Account, error)
	AccountByKey(ctx context.Context, apiKey string) (core.Account, error)
	RotateAPIKey(ctx context.Context, accountID, newKey string, rotatedAt time.Time) error
}

// Service issues and verifies tenant credentials. Password derivation is
// CPU-bound and never runs inside a transaction or lock.
type Service struct {
	store      AccountStore
	iterations int
}

func NewService(store AccountStore, iterations int) *Service {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Service{store: store, iterations: iterations}
}

// Register creates an account and hands out its only plaintext API key.
// The email is normalized to lowercase; duplicates, in any case
// variation, fail with core.ErrEmailTaken via the storage constraint.
func (s *Service) Register(ctx context.Context, email, name, password string) (core.Account, error) {
	email = core.NormalizeEmail(email)
	if !core.ValidEmail(email) {
		return core.Account{}, core.ErrInvalidEmail
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Account{}, core.ErrEmptyName
	}
	if password == "" {
		return core.Account{}, core.ErrEmptyPassword
	}

	salt, err := newSalt()
	if err != nil {
		return core.Account{}, err
	}
	apiKey, err := newAPIKey()
	if err != nil {
		return core.Account{}, err
	}

	a := core.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hashPassword(password, salt, s.iterations),
		Salt:         salt,
		APIKey:       apiKey,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.store.CreateAccount(ctx, a); err != nil {
		return core.Account{}, fmt.Errorf("register account: %w", err)
	}
	return a, nil
}

// RotateKey re-proves password knowledge and atomically replaces the
// bearer token. The old token stops authenticating at commit; on any
// failure it keeps working.
func (s *Service) RotateKey(ctx context.Context, email, password string) (core.Account, error) {
	a, err := s.store.AccountByEmail(ctx, core.NormalizeEmail(email))
	if err != nil {
		return core.Account{}, fmt.Errorf("rotate key: %w", err)
	}

	computed := hashPassword(password, a.Salt, s.iterations)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(a.PasswordHash)) != 1 {
		return core.Account{}, core.ErrWrongPassword
	}

	newKey, err := newAPIKey()
	if err != nil {
		return core.Account{}, err
	}
	rotatedAt := time.Now().UTC()
	if err := s.store.RotateAPIKey(ctx, a.ID, newKey, rotatedAt); err != nil {
		return core.Account{}, fmt.Errorf("rotate key: %w", err)
	}

	a.APIKey = newKey
	a.KeyRotatedAt = rotatedAt
	return a, nil
}

// Lookup resolves a bearer token to its account. No match fails with
// core.ErrInvalidKey.
func (s *Service) Lookup(ctx context.Context, apiKey string) (core.Account, error) {
	return s.store.AccountByKey(ctx, apiKey)
}
