// Package accounts stores account rows, settings included, in the gateway
// database.
package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/forkvault/internal/models"
)

type Repository interface {
	Create(ctx context.Context, a models.NewAccount) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByProductKey(ctx context.Context, productKey string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, id string, u models.AccountUpdate) error
	Delete(ctx context.Context, id string) error
}

const selectColumns = `id, full_name, email, product_key, created_at, is_activated,
		ask_product_key, is_verified, verification_data`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	a := &models.Account{}
	var vd sql.NullString
	if err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.ProductKey, &a.CreatedAt, &a.IsActivated,
		&a.Settings.AskProductKey, &a.Settings.IsVerified, &vd); err != nil {
		return nil, err
	}
	if vd.Valid && vd.String != "" {
		a.Settings.VerificationData = &models.VerificationData{}
		if err := json.Unmarshal([]byte(vd.String), a.Settings.VerificationData); err != nil {
			return nil, fmt.Errorf("decode verification_data: %w", err)
		}
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

func scanAccounts(rows *sql.Rows) ([]*models.Account, error) {
	defer rows.Close()

	result := []*models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// updateSet renders the SET clause of a partial update in a fixed column
// order. placeholder(n) returns the n-th (1-based) bind marker.
func updateSet(u models.AccountUpdate, placeholder func(n int) string) (string, []any, error) {
	var (
		set  string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += col + " = " + placeholder(len(args))
	}

	if u.FullName != nil {
		add("full_name", *u.FullName)
	}
	if u.IsActivated != nil {
		add("is_activated", *u.IsActivated)
	}
	if u.AskProductKey != nil {
		add("ask_product_key", *u.AskProductKey)
	}
	if u.IsVerified != nil {
		add("is_verified", *u.IsVerified)
	}
	if u.VerificationData != nil {
		b, err := json.Marshal(u.VerificationData)
		if err != nil {
			return "", nil, fmt.Errorf("encode verification_data: %w", err)
		}
		add("verification_data", string(b))
	}
	return set, args, nil
}

func expectOne(res sql.Result, err error, notFound error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return notFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
