package domain

import "errors"

// Authentication and session errors
var (
	// Login errors. ErrInvalidCredentials is deliberately generic: it
	// must not reveal whether the username existed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrUnauthorizedDomain = errors.New("email domain not authorized for administrator login")

	// Store errors
	ErrIdentityNotFound = errors.New("identity not found")
	ErrUsernameTaken    = errors.New("username already taken")

	// Provisioning errors
	ErrAllocationExhausted = errors.New("username allocation exhausted")

	// Session errors
	ErrNoSession = errors.New("no active session")
)

// StoreError wraps an underlying storage I/O failure. It propagates
// unchanged through the service; retries are the caller's business.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err as a storage failure for the named operation.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
