package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"ledgerd/internal/core"
)

// testIterations keeps PBKDF2 fast in tests; production uses
// DefaultIterations.
const testIterations = 1000

type fakeStore struct {
	byEmail map[string]core.Account
	byKey   map[string]core.Account
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byEmail: make(map[string]core.Account),
		byKey:   make(map[string]core.Account),
	}
}

func (f *fakeStore) CreateAccount(_ context.Context, a core.Account) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return core.ErrEmailTaken
	}
	f.byEmail[a.Email] = a
	f.byKey[a.APIKey] = a
	return nil
}

func (f *fakeStore) AccountByEmail(_ context.Context, email string) (core.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return core.Account{}, core.ErrEmailNotFound
	}
	return a, nil
}

func (f *fakeStore) AccountByKey(_ context.Context, apiKey string) (core.Account, error) {
	a, ok := f.byKey[apiKey]
	if !ok {
		return core.Account{}, core.ErrInvalidKey
	}
	return a, nil
}

func (f *fakeStore) RotateAPIKey(_ context.Context, accountID, newKey string, rotatedAt time.Time) error {
	for email, a := range f.byEmail {
		if a.ID != accountID {
			continue
		}
		delete(f.byKey, a.APIKey)
		a.APIKey = newKey
		a.KeyRotatedAt = rotatedAt
		f.byEmail[email] = a
		f.byKey[newKey] = a
		return nil
	}
	return errors.New("account not found")
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, testIterations), store
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("missing account id")
	}
	if len(a.APIKey) != 43 {
		t.Fatalf("api key should be 43 chars of raw url base64, got %d", len(a.APIKey))
	}
	if len(a.Salt) != 32 {
		t.Fatalf("salt should be 32 hex chars, got %d", len(a.Salt))
	}
	if len(a.PasswordHash) != 64 {
		t.Fatalf("hash should be 64 hex chars, got %d", len(a.PasswordHash))
	}
	if a.PasswordHash == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if a.RegisteredAt.IsZero() {
		t.Fatalf("RegisteredAt not set")
	}

	got, err := svc.Lookup(ctx, a.APIKey)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("lookup returned wrong account")
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "  Alice@Example.COM ", "Alice", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := store.byEmail["alice@example.com"]; !ok {
		t.Fatalf("email should be stored lowercase")
	}

	_, err := svc.Register(ctx, "ALICE@example.com", "Alice Again", "pw2")
	if !errors.Is(err, core.ErrEmailTaken) {
		t.Fatalf("case variation should collide, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		email, name, password string
		want                  error
	}{
		{"not-an-email", "A", "pw", core.ErrInvalidEmail},
		{"missing@dot", "A", "pw", core.ErrInvalidEmail},
		{"@example.com", "A", "pw", core.ErrInvalidEmail},
		{"", "A", "pw", core.ErrInvalidEmail},
		{"ok@example.com", "", "pw", core.ErrEmptyName},
		{"ok@example.com", "   ", "pw", core.ErrEmptyName},
		{"ok@example.com", "A", "", core.ErrEmptyPassword},
	}
	for i, tc := range cases {
		_, err := svc.Register(ctx, tc.email, tc.name, tc.password)
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestRotateKey(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "bob@example.com", "Bob", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	rotated, err := svc.RotateKey(ctx, "Bob@Example.com", "pw")
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if rotated.APIKey == a.APIKey {
		t.Fatalf("rotation must issue a different key")
	}
	if rotated.KeyRotatedAt.IsZero() {
		t.Fatalf("KeyRotatedAt not set")
	}

	if _, err := svc.Lookup(ctx, a.APIKey); !errors.Is(err, core.ErrInvalidKey) {
		t.Fatalf("old key should stop working, got %v", err)
	}
	if _, err := svc.Lookup(ctx, rotated.APIKey); err != nil {
		t.Fatalf("new key should work: %v", err)
	}
}

func TestRotateKeyWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "carol@example.com", "Carol", "right")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = svc.RotateKey(ctx, "carol@example.com", "wrong")
	if !errors.Is(err, core.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if _, err := svc.Lookup(ctx, a.APIKey); err != nil {
		t.Fatalf("old key must keep working after a failed rotation: %v", err)
	}
}

func TestRotateKeyUnknownEmail(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.RotateKey(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, core.ErrEmailNotFound) {
		t.Fatalf("expected ErrEmailNotFound, got %v", err)
	}
}

func TestHashPasswordDeterministic(t *testing.T) {
	h1 := hashPassword("pw", "aabbccdd", testIterations)
	h2 := hashPassword("pw", "aabbccdd", testIterations)
	if h1 != h2 {
		t.Fatalf("same inputs must derive the same hash")
	}
	if hashPassword("pw", "eeff0011", testIterations) == h1 {
		t.Fatalf("different salts must derive different hashes")
	}
	if hashPassword("pw", "aabbccdd", testIterations+1) == h1 {
		t.Fatalf("different iteration counts must derive different hashes")
	}
}
