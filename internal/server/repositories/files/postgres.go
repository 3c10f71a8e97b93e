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

// PostgresRepository implements file storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file row; id and created_at are assigned here.
func (r *PostgresRepository) Create(ctx context.Context, in models.NewFile) (*models.FileRecord, error) {
	f := &models.FileRecord{
		ID:          uuid.NewString(),
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Size:        in.Size,
		Type:        in.Type,
		StoragePath: in.StoragePath,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	query := `
		INSERT INTO files (id, user_id, name, size, type, storage_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(ctx, query,
		f.ID, f.OwnerID, f.Name, f.Size, f.Type, f.StoragePath, f.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// ListByOwner returns all files of ownerID, oldest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM files WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	return scanFiles(rows)
}

// Delete removes the row with the given id. Exactly one row must be affected.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}
