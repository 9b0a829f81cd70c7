package core

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the tool surface can return. Each failed
// operation maps to exactly one kind.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindDuplicateEmail  Kind = "duplicate_email"
	KindUnauthenticated Kind = "unauthenticated"
	KindBadCredentials  Kind = "bad_credentials"
	KindUnknownEmail    Kind = "unknown_email"
	KindNotFound        Kind = "not_found"
	KindStorage         Kind = "storage_failure"
)

// Error pairs a taxonomy kind with a stable, human-readable message.
// Only storage failures wrap an underlying cause; the cause is for logs
// and diagnostics, never for access decisions.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Errf builds a taxonomy error with a formatted message.
func Errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Classify converts any failure into its taxonomy form. Untyped errors
// become storage failures with a generic message; the cause stays
// wrapped for logging and is never rendered to callers.
func Classify(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return &Error{Kind: KindStorage, Message: "Database error.", Err: err}
}

// KindOf reports the taxonomy kind of err; the mapping is total.
func KindOf(err error) Kind {
	return Classify(err).Kind
}

// Stable failure values. Comparable with errors.Is even through
// fmt.Errorf("%w") wrapping.
var (
	ErrInvalidEmail    = Errf(KindInvalidInput, "Invalid email format.")
	ErrEmptyName       = Errf(KindInvalidInput, "Name is required.")
	ErrEmptyPassword   = Errf(KindInvalidInput, "Password is required.")
	ErrInvalidDate     = Errf(KindInvalidInput, "Invalid date format. Use YYYY-MM-DD.")
	ErrAmountRequired  = Errf(KindInvalidInput, "Amount is required.")
	ErrEmptyCategory   = Errf(KindInvalidInput, "Category is required.")
	ErrEmailTaken      = Errf(KindDuplicateEmail, "This email is already registered. Use rotate_key if you lost your key.")
	ErrEmailNotFound   = Errf(KindUnknownEmail, "Email not found.")
	ErrWrongPassword   = Errf(KindBadCredentials, "Incorrect password.")
	ErrKeyRequired     = Errf(KindUnauthenticated, "API key is required")
	ErrInvalidKey      = Errf(KindUnauthenticated, "Invalid API key")
	ErrExpenseNotFound = Errf(KindNotFound, "Expense not found or not yours.")
)
