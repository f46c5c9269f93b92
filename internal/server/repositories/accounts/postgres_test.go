package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var accountCols = []string{"id", "username", "password_hash", "twofa_enabled", "twofa_secret", "current_session_id", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+auth_users\s*\(username,\s*password_hash,\s*twofa_enabled,\s*twofa_secret\)\s*VALUES\s*\(\$1,\s*\$2,\s*FALSE,\s*NULL\)\s*RETURNING\s+id$`
	mock.ExpectQuery(q).
		WithArgs("alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	got, err := repo.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "alice", got.UserName)
	assert.False(t, got.TwoFAEnabled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+auth_users`).
		WithArgs("alice", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "alice", "hash")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+auth_users`).
		WithArgs("alice", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), "alice", "hash")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	q := `(?s)^SELECT\s+id,\s*username,.*FROM\s+auth_users\s+WHERE\s+username\s*=\s*\$1$`
	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(accountCols).AddRow(int64(1), "alice", "hash", true, "SECRET", int64(9), now))

	got, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.True(t, got.TwoFAEnabled)
	assert.Equal(t, "SECRET", got.TwoFASecret)
	assert.Equal(t, int64(9), got.CurrentSessionID)
}

func TestGetByID_NullColumns(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+auth_users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(accountCols).AddRow(int64(3), "bob", "hash", false, nil, nil, time.Now()))

	got, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, got.TwoFASecret)
	assert.Zero(t, got.CurrentSessionID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+auth_users\s+WHERE\s+id`).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetCurrentSession(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+auth_users\s+SET\s+current_session_id\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2$`
	mock.ExpectExec(q).WithArgs(int64(5), int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(5), int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetCurrentSession(context.Background(), 1, 5))
	assert.ErrorIs(t, repo.SetCurrentSession(context.Background(), 2, 5), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCurrentSession_NoRowsIsFine(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`SET\s+current_session_id\s*=\s*NULL\s+WHERE\s+id\s*=\s*\$1\s+AND\s+current_session_id\s*=\s*\$2`).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.ClearCurrentSession(context.Background(), 1, 5))
}

func TestTwoFactorUpdates(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`SET\s+twofa_secret\s*=\s*\$1,\s*twofa_enabled\s*=\s*FALSE`).
		WithArgs("SECRET", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SET\s+twofa_enabled\s*=\s*TRUE`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SET\s+twofa_enabled\s*=\s*FALSE,\s*twofa_secret\s*=\s*NULL`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetTwoFactorSecret(ctx, 1, "SECRET"))
	require.NoError(t, repo.EnableTwoFactor(ctx, 1))
	require.NoError(t, repo.DisableTwoFactor(ctx, 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnableTwoFactor_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`SET\s+twofa_enabled\s*=\s*TRUE`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("db err"))

	err := repo.EnableTwoFactor(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
