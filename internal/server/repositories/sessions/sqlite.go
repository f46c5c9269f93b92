package sessions

import "github.com/dmitrijs2005/gophauth/internal/dbx"

var sqliteQueries = queries{
	create: `INSERT INTO auth_sessions (user_id, session_token)
		VALUES (?, ?)
		RETURNING id`,
	find: `SELECT id, user_id, session_token, created_at, last_seen_at
		FROM auth_sessions
		WHERE id = ? AND user_id = ?`,
	touch:  `UPDATE auth_sessions SET last_seen_at = CURRENT_TIMESTAMP WHERE id = ?`,
	delete: `DELETE FROM auth_sessions WHERE id = ? AND user_id = ?`,
}

type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqliteQueries}}
}
