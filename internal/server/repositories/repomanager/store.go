package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/filex"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Store is the process-wide database handle together with the repository
// manager matching its dialect. It is opened at startup and closed at
// shutdown by its owner.
type Store struct {
	DB      *sql.DB
	Manager RepositoryManager
}

// Open connects to the database, verifies the connection and applies
// migrations.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var (
		db  *sql.DB
		m   RepositoryManager
		err error
	)

	switch driver {
	case DriverSQLite:
		if isSQLiteFilePath(dsn) {
			if err := filex.EnsureParentDir(dsn); err != nil {
				return nil, fmt.Errorf("db dir error: %w", err)
			}
		}
		db, err = sql.Open(DriverSQLite, SQLiteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		// SQLite allows a single writer; one connection serializes them
		// instead of surfacing SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		m = &SQLiteRepositoryManager{}
	case DriverPostgres:
		db, err = sql.Open(DriverPostgres, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		m = &PostgresRepositoryManager{}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Store{DB: db, Manager: m}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
