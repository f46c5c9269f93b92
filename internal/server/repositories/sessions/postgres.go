package sessions

import "github.com/dmitrijs2005/gophauth/internal/dbx"

var postgresQueries = queries{
	create: `INSERT INTO auth_sessions (user_id, session_token)
		VALUES ($1, $2)
		RETURNING id`,
	find: `SELECT id, user_id, session_token, created_at, last_seen_at
		FROM auth_sessions
		WHERE id = $1 AND user_id = $2`,
	touch:  `UPDATE auth_sessions SET last_seen_at = now() WHERE id = $1`,
	delete: `DELETE FROM auth_sessions WHERE id = $1 AND user_id = $2`,
}

type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: postgresQueries}}
}
