package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/dbx"
	"github.com/dmitrijs2005/forkvault/internal/models"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func (r *SQLiteRepository) Create(ctx context.Context, in models.NewAccount) (*models.Account, error) {
	a := &models.Account{
		ID:          uuid.NewString(),
		FullName:    in.FullName,
		Email:       in.Email,
		ProductKey:  in.ProductKey,
		CreatedAt:   time.Now().UTC(),
		IsActivated: in.IsActivated,
		Settings:    models.DefaultSettings(),
	}

	query := `INSERT INTO accounts (id, full_name, email, product_key, created_at, is_activated, ask_product_key, is_verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, a.ID, a.FullName, a.Email, a.ProductKey, a.CreatedAt,
		a.IsActivated, a.Settings.AskProductKey, a.Settings.IsVerified)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM accounts WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByProductKey(ctx context.Context, productKey string) (*models.Account, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM accounts WHERE product_key = ?`, productKey)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanAccounts(rows)
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, u models.AccountUpdate) error {
	if u.Empty() {
		return nil
	}
	set, args, err := updateSet(u, func(int) string { return "?" })
	if err != nil {
		return err
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET `+set+` WHERE id = ?`, args...)
	return expectOne(res, err, common.ErrorNotFound)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	return expectOne(res, err, common.ErrorNotFound)
}
