// Package accounts declares the repository contract for auth accounts and
// its SQLite and PostgreSQL implementations.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository defines persistence operations on accounts. Lookups return
// common.ErrorNotFound when the account is absent.
type Repository interface {
	// Create inserts a new account with 2FA disabled. A duplicate username
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, username, passwordHash string) (*models.Account, error)

	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// SetCurrentSession marks sessionID as the account's current session.
	SetCurrentSession(ctx context.Context, accountID, sessionID int64) error

	// ClearCurrentSession resets the current session pointer, but only while
	// it still references sessionID. Clearing nothing is not an error.
	ClearCurrentSession(ctx context.Context, accountID, sessionID int64) error

	// SetTwoFactorSecret stores a pending secret and forces 2FA off.
	SetTwoFactorSecret(ctx context.Context, accountID int64, secret string) error
	EnableTwoFactor(ctx context.Context, accountID int64) error

	// DisableTwoFactor turns 2FA off and erases the stored secret.
	DisableTwoFactor(ctx context.Context, accountID int64) error
}
