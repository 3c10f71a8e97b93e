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
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account with default settings. A duplicate product
// key yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, in models.NewAccount) (*models.Account, error) {
	a := &models.Account{
		ID:          uuid.NewString(),
		FullName:    in.FullName,
		Email:       in.Email,
		ProductKey:  in.ProductKey,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		IsActivated: in.IsActivated,
		Settings:    models.DefaultSettings(),
	}

	query := `INSERT INTO accounts (id, full_name, email, product_key, created_at, is_activated, ask_product_key, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query, a.ID, a.FullName, a.Email, a.ProductKey, a.CreatedAt,
		a.IsActivated, a.Settings.AskProductKey, a.Settings.IsVerified)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByProductKey(ctx context.Context, productKey string) (*models.Account, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM accounts WHERE product_key = $1`, productKey)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// List returns every account, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanAccounts(rows)
}

// Update applies the non-nil fields of u. An empty update is a no-op.
func (r *PostgresRepository) Update(ctx context.Context, id string, u models.AccountUpdate) error {
	if u.Empty() {
		return nil
	}
	set, args, err := updateSet(u, func(n int) string { return fmt.Sprintf("$%d", n) })
	if err != nil {
		return err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE accounts SET %s WHERE id = $%d`, set, len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	return expectOne(res, err, common.ErrorNotFound)
}

// Delete removes the account row. Files owned by it are left in place.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return expectOne(res, err, common.ErrorNotFound)
}
