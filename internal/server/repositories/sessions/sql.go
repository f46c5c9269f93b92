package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type queries struct {
	create string
	find   string
	touch  string
	delete string
}

type sqlRepository struct {
	db dbx.DBTX
	q  queries
}

func (r *sqlRepository) Create(ctx context.Context, accountID int64, token string) (*models.Session, error) {
	s := &models.Session{AccountID: accountID, Token: token}

	if err := r.db.QueryRowContext(ctx, r.q.create, accountID, token).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *sqlRepository) Find(ctx context.Context, sessionID, accountID int64) (*models.Session, error) {
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, r.q.find, sessionID, accountID).
		Scan(&s.ID, &s.AccountID, &s.Token, &s.CreatedAt, &s.LastSeenAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *sqlRepository) Touch(ctx context.Context, sessionID int64) error {
	if _, err := r.db.ExecContext(ctx, r.q.touch, sessionID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *sqlRepository) Delete(ctx context.Context, sessionID, accountID int64) error {
	if _, err := r.db.ExecContext(ctx, r.q.delete, sessionID, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
