package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/sessions"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)

	pg := &PostgresRepositoryManager{}
	assert.IsType(t, &accounts.PostgresRepository{}, pg.Accounts(db))
	assert.IsType(t, &sessions.PostgresRepository{}, pg.Sessions(db))

	lite := &SQLiteRepositoryManager{}
	assert.IsType(t, &accounts.SQLiteRepository{}, lite.Accounts(db))
	assert.IsType(t, &sessions.SQLiteRepository{}, lite.Sessions(db))

	var _ RepositoryManager = pg
	var _ RepositoryManager = lite
}

func TestRunMigrations_PassesDialect(t *testing.T) {
	db, _ := newDB(t)

	orig := runMigrations
	t.Cleanup(func() { runMigrations = orig })

	var got []goose.Dialect
	runMigrations = func(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
		got = append(got, dialect)
		return nil
	}

	ctx := context.Background()
	require.NoError(t, (&PostgresRepositoryManager{}).RunMigrations(ctx, db))
	require.NoError(t, (&SQLiteRepositoryManager{}).RunMigrations(ctx, db))

	assert.Equal(t, []goose.Dialect{goose.DialectPostgres, goose.DialectSQLite3}, got)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)

	orig := runMigrations
	t.Cleanup(func() { runMigrations = orig })
	runMigrations = func(context.Context, *sql.DB, goose.Dialect) error {
		return errors.New("boom")
	}

	err := (&PostgresRepositoryManager{}).RunMigrations(context.Background(), db)
	assert.EqualError(t, err, "boom")
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "auth.db", want: "auth.db?" + sqlitePragmas},
		{in: "file:auth.db?mode=rwc", want: "file:auth.db?mode=rwc&" + sqlitePragmas},
		{in: "auth.db?_pragma=foreign_keys(1)", want: "auth.db?_pragma=foreign_keys(1)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SQLiteDSN(tt.in), tt.in)
	}
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.IsType(t, &SQLiteRepositoryManager{}, store.Manager)

	var n int
	require.NoError(t, store.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM auth_users`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpen_SQLiteCreatesParentDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "auth.db")

	store, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_SQLiteParentIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := Open(context.Background(), DriverSQLite, filepath.Join(file, "auth.db"))
	require.Error(t, err)
}

func TestIsSQLiteFilePath(t *testing.T) {
	assert.True(t, isSQLiteFilePath("data/auth.db"))
	assert.False(t, isSQLiteFilePath(":memory:"))
	assert.False(t, isSQLiteFilePath("file:auth.db"))
	assert.False(t, isSQLiteFilePath("auth.db?_pragma=foreign_keys(1)"))
}
