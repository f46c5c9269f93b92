// Package common defines shared constants and sentinel errors used across
// client and server layers of GophAuth. Callers should use errors.Is to
// match these values.
package common

import "errors"

// Error kinds. Each kind maps to one HTTP status at the API boundary.
var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal          = errors.New("internal error")
	ErrorValidation        = errors.New("validation error")
	ErrorConflict          = errors.New("conflict")
	ErrorUnauthorized      = errors.New("unauthorized")
	ErrorTwoFactorRequired = errors.New(TwoFactorRequiredCode)
	ErrorInvalidCode       = errors.New("invalid code")
	ErrorPrecondition      = errors.New("precondition failed")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Error is a caller-facing error: Message is what gets returned to the
// client, Kind decides how it is classified.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds an Error of the given kind.
func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Concrete errors returned by the auth service.
var (
	ErrMissingCredentials     = NewError(ErrorValidation, "missing credentials")
	ErrPasswordTooLong        = NewError(ErrorValidation, "password too long")
	ErrUsernameTaken          = NewError(ErrorConflict, "username already exists")
	ErrIncorrectCredentials   = NewError(ErrorUnauthorized, "incorrect username or password")
	ErrTwoFactorRequired      = NewError(ErrorTwoFactorRequired, TwoFactorRequiredCode)
	ErrIncorrectTwoFactorCode = NewError(ErrorUnauthorized, "incorrect 2FA code")
	ErrInvalidSession         = NewError(ErrorUnauthorized, "invalid session")
	ErrAccountNotFound        = NewError(ErrorNotFound, "user not found")
	ErrMissingCode            = NewError(ErrorValidation, "missing 2FA code")
	ErrNoPendingSecret        = NewError(ErrorPrecondition, "no 2FA secret configured, call /2fa/init first")
	ErrIncorrectCode          = NewError(ErrorInvalidCode, "incorrect 2FA code")
)
