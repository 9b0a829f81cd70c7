package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
	}{
		{ErrInvalidEmail, KindInvalidInput},
		{ErrEmailTaken, KindDuplicateEmail},
		{ErrKeyRequired, KindUnauthenticated},
		{ErrInvalidKey, KindUnauthenticated},
		{ErrWrongPassword, KindBadCredentials},
		{ErrEmailNotFound, KindUnknownEmail},
		{ErrExpenseNotFound, KindNotFound},
		{fmt.Errorf("rotate key: %w", ErrWrongPassword), KindBadCredentials},
		{errors.New("untyped"), KindStorage},
	}
	for i, tc := range cases {
		if got := KindOf(tc.err); got != tc.kind {
			t.Fatalf("case %d: KindOf(%v) = %q, want %q", i, tc.err, got, tc.kind)
		}
	}
}

func TestClassifyUntyped(t *testing.T) {
	cause := errors.New("database is locked")
	ce := Classify(fmt.Errorf("select expenses: %w", cause))
	if ce.Kind != KindStorage {
		t.Fatalf("untyped errors classify as storage, got %q", ce.Kind)
	}
	if ce.Message != "Database error." {
		t.Fatalf("generic message expected, got %q", ce.Message)
	}
	if !errors.Is(ce, cause) {
		t.Fatalf("cause must stay reachable for logs")
	}
}

func TestClassifyTyped(t *testing.T) {
	ce := Classify(fmt.Errorf("rotate key: %w", ErrWrongPassword))
	if ce != ErrWrongPassword {
		t.Fatalf("typed errors classify as themselves, got %+v", ce)
	}
}

func TestErrorIsThroughWrap(t *testing.T) {
	wrapped := fmt.Errorf("authenticate: %w", ErrInvalidKey)
	if !errors.Is(wrapped, ErrInvalidKey) {
		t.Fatalf("errors.Is should match through wrapping")
	}
}

