package grpc

import (
	"context"

	"github.com/dmitrijs2005/forkvault/internal/logging"
	"github.com/dmitrijs2005/forkvault/internal/models"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// fakeGateway returns err from every call when set, otherwise canned data.
type fakeGateway struct {
	err      error
	account  *models.Account
	accounts []*models.Account
	files    []*models.FileRecord
	blob     []byte

	lastUpdate models.AccountUpdate
	lastPath   string
}

func (f *fakeGateway) GetAccount(context.Context, string) (*models.Account, error) {
	return f.account, f.err
}
func (f *fakeGateway) ListAccounts(context.Context) ([]*models.Account, error) {
	return f.accounts, f.err
}
func (f *fakeGateway) FindAccountByKey(context.Context, string) (*models.Account, error) {
	return f.account, f.err
}
func (f *fakeGateway) InsertAccount(_ context.Context, a models.NewAccount) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Account{ID: "new", FullName: a.FullName, ProductKey: a.ProductKey}, nil
}
func (f *fakeGateway) UpdateAccount(_ context.Context, _ string, u models.AccountUpdate) error {
	f.lastUpdate = u
	return f.err
}
func (f *fakeGateway) DeleteAccount(context.Context, string) error { return f.err }
func (f *fakeGateway) ListFiles(context.Context, string) ([]*models.FileRecord, error) {
	return f.files, f.err
}
func (f *fakeGateway) InsertFile(_ context.Context, nf models.NewFile) (*models.FileRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.FileRecord{ID: "f-new", OwnerID: nf.OwnerID, Name: nf.Name, Size: nf.Size}, nil
}
func (f *fakeGateway) DeleteFileRecord(context.Context, string) error { return f.err }
func (f *fakeGateway) UploadBlob(_ context.Context, path string, data []byte) error {
	f.lastPath = path
	f.blob = data
	return f.err
}
func (f *fakeGateway) DownloadBlob(context.Context, string) ([]byte, error) {
	return f.blob, f.err
}
func (f *fakeGateway) DeleteBlob(_ context.Context, path string) error {
	f.lastPath = path
	return f.err
}
