package accounts

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var sqliteQueries = queries{
	create: `INSERT INTO auth_users (username, password_hash, twofa_enabled, twofa_secret)
		VALUES (?, ?, 0, NULL)
		RETURNING id`,
	getByUsername: `SELECT ` + accountColumns + ` FROM auth_users WHERE username = ?`,
	getByID:       `SELECT ` + accountColumns + ` FROM auth_users WHERE id = ?`,
	setCurrentSession: `UPDATE auth_users SET current_session_id = ?
		WHERE id = ?`,
	clearCurrentSession: `UPDATE auth_users SET current_session_id = NULL
		WHERE id = ? AND current_session_id = ?`,
	setSecret: `UPDATE auth_users SET twofa_secret = ?, twofa_enabled = 0
		WHERE id = ?`,
	enable: `UPDATE auth_users SET twofa_enabled = 1
		WHERE id = ?`,
	disable: `UPDATE auth_users SET twofa_enabled = 0, twofa_secret = NULL
		WHERE id = ?`,
}

// SQLiteRepository stores accounts in a single-file SQLite database.
type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqliteQueries, isUniqueViolation: isSQLiteUniqueViolation}}
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
