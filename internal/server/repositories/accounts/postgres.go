package accounts

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

var postgresQueries = queries{
	create: `INSERT INTO auth_users (username, password_hash, twofa_enabled, twofa_secret)
		VALUES ($1, $2, FALSE, NULL)
		RETURNING id`,
	getByUsername: `SELECT ` + accountColumns + ` FROM auth_users WHERE username = $1`,
	getByID:       `SELECT ` + accountColumns + ` FROM auth_users WHERE id = $1`,
	setCurrentSession: `UPDATE auth_users SET current_session_id = $1
		WHERE id = $2`,
	clearCurrentSession: `UPDATE auth_users SET current_session_id = NULL
		WHERE id = $1 AND current_session_id = $2`,
	setSecret: `UPDATE auth_users SET twofa_secret = $1, twofa_enabled = FALSE
		WHERE id = $2`,
	enable: `UPDATE auth_users SET twofa_enabled = TRUE
		WHERE id = $1`,
	disable: `UPDATE auth_users SET twofa_enabled = FALSE, twofa_secret = NULL
		WHERE id = $1`,
}

// PostgresRepository stores accounts in PostgreSQL via the pgx stdlib driver.
type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: postgresQueries, isUniqueViolation: isPgUniqueViolation}}
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
