// Package sessions declares the repository contract for login sessions and
// its SQLite and PostgreSQL implementations.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository defines operations on session rows. Every lookup and delete is
// scoped to the owning account.
type Repository interface {
	// Create stores a new session for accountID identified by the opaque token.
	Create(ctx context.Context, accountID int64, token string) (*models.Session, error)

	// Find returns the session or common.ErrorNotFound.
	Find(ctx context.Context, sessionID, accountID int64) (*models.Session, error)

	// Touch refreshes last_seen_at.
	Touch(ctx context.Context, sessionID int64) error

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID, accountID int64) error
}
