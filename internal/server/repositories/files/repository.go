// Package files stores file metadata rows. Blobs live in the blob store;
// a row only carries the storage path.
package files

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/forkvault/internal/models"
)

type Repository interface {
	Create(ctx context.Context, f models.NewFile) (*models.FileRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error)
	Delete(ctx context.Context, id string) error
}

const selectColumns = `id, user_id, name, size, type, storage_path, created_at`

func scanFiles(rows *sql.Rows) ([]*models.FileRecord, error) {
	defer rows.Close()

	result := []*models.FileRecord{}
	for rows.Next() {
		var f models.FileRecord
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Size, &f.Type, &f.StoragePath, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		f.CreatedAt = f.CreatedAt.UTC()
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	return result, nil
}
