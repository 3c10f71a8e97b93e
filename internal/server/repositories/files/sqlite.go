package files

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/dbx"
	"github.com/dmitrijs2005/forkvault/internal/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, in models.NewFile) (*models.FileRecord, error) {
	f := &models.FileRecord{
		ID:          uuid.NewString(),
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Size:        in.Size,
		Type:        in.Type,
		StoragePath: in.StoragePath,
		CreatedAt:   time.Now().UTC(),
	}

	query := `INSERT INTO files (id, user_id, name, size, type, storage_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		f.ID, f.OwnerID, f.Name, f.Size, f.Type, f.StoragePath, f.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM files WHERE user_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	return scanFiles(rows)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `delete from files where id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
