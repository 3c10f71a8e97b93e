// Package services contains server-side business logic. GatewayService
// implements the persistence gateway contract on top of the record
// repositories and the blob store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/dbx"
	"github.com/dmitrijs2005/forkvault/internal/gateway"
	"github.com/dmitrijs2005/forkvault/internal/logging"
	"github.com/dmitrijs2005/forkvault/internal/models"
	"github.com/dmitrijs2005/forkvault/internal/server/blobstore"
	"github.com/dmitrijs2005/forkvault/internal/server/repositories/repomanager"
)

var _ gateway.Gateway = (*GatewayService)(nil)

type GatewayService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobstore.Store
	maxBlobSize int64
	logger      logging.Logger
}

// NewGatewayService wires the repositories and blob store. Blobs larger
// than maxBlobSize are refused; zero means common.DefaultMaxUploadSize.
func NewGatewayService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store, maxBlobSize int64, l logging.Logger) *GatewayService {
	if maxBlobSize <= 0 {
		maxBlobSize = common.DefaultMaxUploadSize
	}
	return &GatewayService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		maxBlobSize: maxBlobSize,
		logger:      l.With("module", "gateway_service"),
	}
}

func (s *GatewayService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByID(ctx, id)
}

func (s *GatewayService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	return s.repomanager.Accounts(s.db).List(ctx)
}

func (s *GatewayService) FindAccountByKey(ctx context.Context, productKey string) (*models.Account, error) {
	if productKey == "" {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Accounts(s.db).GetByProductKey(ctx, productKey)
}

func (s *GatewayService) InsertAccount(ctx context.Context, a models.NewAccount) (*models.Account, error) {
	if a.ProductKey == "" {
		return nil, fmt.Errorf("insert account: %w", common.ErrInvalidProductKey)
	}
	acc, err := s.repomanager.Accounts(s.db).Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "account created", "id", acc.ID)
	return acc, nil
}

func (s *GatewayService) UpdateAccount(ctx context.Context, id string, u models.AccountUpdate) error {
	return s.repomanager.Accounts(s.db).Update(ctx, id, u)
}

// DeleteAccount removes only the account row; its files and blobs stay.
func (s *GatewayService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.repomanager.Accounts(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "account deleted", "id", id)
	return nil
}

func (s *GatewayService) ListFiles(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	return s.repomanager.Files(s.db).ListByOwner(ctx, ownerID)
}

// InsertFile records a file for an existing owner. The owner lookup and
// the insert share one transaction.
func (s *GatewayService) InsertFile(ctx context.Context, f models.NewFile) (*models.FileRecord, error) {
	var rec *models.FileRecord
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Accounts(tx).GetByID(ctx, f.OwnerID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("owner %s: %w", f.OwnerID, common.ErrorNotFound)
			}
			return err
		}
		var err error
		rec, err = s.repomanager.Files(tx).Create(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *GatewayService) DeleteFileRecord(ctx context.Context, id string) error {
	return s.repomanager.Files(s.db).Delete(ctx, id)
}

func (s *GatewayService) UploadBlob(ctx context.Context, path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("upload blob: %w", common.ErrEmptyName)
	}
	if int64(len(data)) > s.maxBlobSize {
		return fmt.Errorf("upload blob %s (%d bytes): %w", path, len(data), common.ErrFileTooLarge)
	}
	if err := s.blobs.Put(ctx, path, data); err != nil {
		return err
	}
	s.logger.Debug(ctx, "blob stored", "path", path, "size", len(data))
	return nil
}

func (s *GatewayService) DownloadBlob(ctx context.Context, path string) ([]byte, error) {
	return s.blobs.Get(ctx, path)
}

func (s *GatewayService) DeleteBlob(ctx context.Context, path string) error {
	return s.blobs.Delete(ctx, path)
}
