package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

const accountColumns = `id, username, password_hash, twofa_enabled, twofa_secret, current_session_id, created_at`

// queries is the dialect-specific SQL used by sqlRepository.
type queries struct {
	create              string
	getByUsername       string
	getByID             string
	setCurrentSession   string
	clearCurrentSession string
	setSecret           string
	enable              string
	disable             string
}

type sqlRepository struct {
	db                dbx.DBTX
	q                 queries
	isUniqueViolation func(error) bool
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a         models.Account
		secret    sql.NullString
		currentID sql.NullInt64
	)
	err := row.Scan(&a.ID, &a.UserName, &a.PasswordHash, &a.TwoFAEnabled, &secret, &currentID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	a.TwoFASecret = secret.String
	a.CurrentSessionID = currentID.Int64
	return &a, nil
}

func (r *sqlRepository) Create(ctx context.Context, username, passwordHash string) (*models.Account, error) {
	a := &models.Account{UserName: username, PasswordHash: passwordHash}

	err := r.db.QueryRowContext(ctx, r.q.create, username, passwordHash).Scan(&a.ID)
	if err != nil {
		if r.isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *sqlRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, r.q.getByUsername, username))
}

func (r *sqlRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, r.q.getByID, id))
}

func (r *sqlRepository) SetCurrentSession(ctx context.Context, accountID, sessionID int64) error {
	return r.execOne(ctx, r.q.setCurrentSession, sessionID, accountID)
}

func (r *sqlRepository) ClearCurrentSession(ctx context.Context, accountID, sessionID int64) error {
	if _, err := r.db.ExecContext(ctx, r.q.clearCurrentSession, accountID, sessionID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *sqlRepository) SetTwoFactorSecret(ctx context.Context, accountID int64, secret string) error {
	return r.execOne(ctx, r.q.setSecret, secret, accountID)
}

func (r *sqlRepository) EnableTwoFactor(ctx context.Context, accountID int64) error {
	return r.execOne(ctx, r.q.enable, accountID)
}

func (r *sqlRepository) DisableTwoFactor(ctx context.Context, accountID int64) error {
	return r.execOne(ctx, r.q.disable, accountID)
}

// execOne runs an UPDATE that must touch exactly one account row.
func (r *sqlRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
