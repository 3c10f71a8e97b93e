package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/forkvault/internal/dbx"
	"github.com/dmitrijs2005/forkvault/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/forkvault/internal/server/repositories/files"
)

// RepositoryManager vends dialect-specific repositories bound to a DBTX
// and migrates the schema for that dialect.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Files(db dbx.DBTX) files.Repository
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// Open picks the driver from the DSN, opens and pings the database and
// returns the matching manager. postgres:// and postgresql:// use pgx;
// sqlite: and file: use modernc sqlite.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		driver string
		source string
		m      RepositoryManager
	)

	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		driver, source = "pgx", dsn
		m = &PostgresRepositoryManager{}
	case strings.HasPrefix(dsn, "sqlite:"):
		driver, source = "sqlite", strings.TrimPrefix(dsn, "sqlite:")
		m = &SQLiteRepositoryManager{}
	case strings.HasPrefix(dsn, "file:"):
		driver, source = "sqlite", dsn
		m = &SQLiteRepositoryManager{}
	default:
		return nil, nil, fmt.Errorf("unsupported database dsn %q", dsn)
	}

	db, err := sqlOpen(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, m, nil
}
