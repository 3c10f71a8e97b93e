package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/forkvault/internal/dbx"
	"github.com/dmitrijs2005/forkvault/internal/server/migrations"
	"github.com/dmitrijs2005/forkvault/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/forkvault/internal/server/repositories/files"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager is the single-file deployment of the gateway.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return files.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "sqlite")
}
