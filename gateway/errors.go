package gateway

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is wrapped by QueryError when a row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is wrapped by AuthError when sign-in fails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is wrapped by AuthError when signing up an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrCartChanged is wrapped by QueryError when a cart line no longer
	// matches the order being placed.
	ErrCartChanged = errors.New("cart changed during checkout")
)

// AuthError reports a credential or session failure.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return "auth " + e.Op + ": " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// QueryError reports a failed read or write against a table.
type QueryError struct {
	Table string
	Op    string
	Err   error
}

func (e *QueryError) Error() string {
	return e.Op + " " + e.Table + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }

// ValidationError reports input rejected before anything was written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

func queryError(table, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	}
	return &QueryError{Table: table, Op: op, Err: err}
}

func authError(op string, err error) error {
	return &AuthError{Op: op, Err: err}
}
