// Package gateway defines the persistence contract the vault core is
// written against: keyed record CRUD over accounts and files, plus blob
// storage keyed by path.
//
// Lookups that find nothing return common.ErrorNotFound.
package gateway

import (
	"context"

	"github.com/dmitrijs2005/forkvault/internal/models"
)

// Accounts is the account half of the gateway.
type Accounts interface {
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	FindAccountByKey(ctx context.Context, productKey string) (*models.Account, error)
	InsertAccount(ctx context.Context, a models.NewAccount) (*models.Account, error)
	UpdateAccount(ctx context.Context, id string, u models.AccountUpdate) error
	DeleteAccount(ctx context.Context, id string) error
}

// Files is the file-metadata half of the gateway.
type Files interface {
	ListFiles(ctx context.Context, ownerID string) ([]*models.FileRecord, error)
	InsertFile(ctx context.Context, f models.NewFile) (*models.FileRecord, error)
	DeleteFileRecord(ctx context.Context, id string) error
}

// Blobs is the object-storage half of the gateway.
type Blobs interface {
	UploadBlob(ctx context.Context, path string, data []byte) error
	DownloadBlob(ctx context.Context, path string) ([]byte, error)
	DeleteBlob(ctx context.Context, path string) error
}

// Gateway is the full persistence contract.
type Gateway interface {
	Accounts
	Files
	Blobs
}
