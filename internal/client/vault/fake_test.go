package vault

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/models"
)

// fakeGateway is an in-memory gateway with per-call failure injection.
type fakeGateway struct {
	mu sync.Mutex

	seq      int
	accounts []*models.Account
	files    []*models.FileRecord
	blobs    map[string][]byte

	// fail maps a method name to the error it returns.
	fail map[string]error
	// failBlobDelete maps a blob path to the error DeleteBlob returns for it.
	failBlobDelete map[string]error
	calls          map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		blobs:          map[string][]byte{},
		fail:           map[string]error{},
		failBlobDelete: map[string]error{},
		calls:          map[string]int{},
	}
}

// enter records the call and locks f; the caller unlocks.
func (f *fakeGateway) enter(method string) error {
	f.mu.Lock()
	f.calls[method]++
	return f.fail[method]
}

func (f *fakeGateway) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeGateway) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeGateway) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeGateway) seedAccount(name, key string, active bool) *models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := &models.Account{
		ID:          f.nextID("acc"),
		FullName:    name,
		Email:       name + "@example.com",
		ProductKey:  key,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActivated: active,
		Settings:    models.DefaultSettings(),
	}
	f.accounts = append(f.accounts, a)
	return a
}

func (f *fakeGateway) seedFile(ownerID, name string, data []byte) *models.FileRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID("file")
	r := &models.FileRecord{
		ID:          id,
		OwnerID:     ownerID,
		Name:        name,
		Size:        int64(len(data)),
		Type:        "text/plain",
		StoragePath: ownerID + "/" + id + "_" + name,
	}
	f.files = append(f.files, r)
	f.blobs[r.StoragePath] = data
	return r
}

func (f *fakeGateway) account(id string) *models.Account {
	for _, a := range f.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

func (f *fakeGateway) GetAccount(_ context.Context, id string) (*models.Account, error) {
	if err := f.enter("GetAccount"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	if a := f.account(id); a != nil {
		return clone(a), nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeGateway) ListAccounts(context.Context) ([]*models.Account, error) {
	if err := f.enter("ListAccounts"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	out := make([]*models.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, clone(a))
	}
	return out, nil
}

func (f *fakeGateway) FindAccountByKey(_ context.Context, key string) (*models.Account, error) {
	if err := f.enter("FindAccountByKey"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ProductKey == key {
			return clone(a), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeGateway) InsertAccount(_ context.Context, n models.NewAccount) (*models.Account, error) {
	if err := f.enter("InsertAccount"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ProductKey == n.ProductKey {
			return nil, common.ErrorAlreadyExists
		}
	}
	a := &models.Account{
		ID:          f.nextID("acc"),
		FullName:    n.FullName,
		Email:       n.Email,
		ProductKey:  n.ProductKey,
		IsActivated: n.IsActivated,
		Settings:    models.DefaultSettings(),
	}
	f.accounts = append(f.accounts, a)
	return clone(a), nil
}

func (f *fakeGateway) UpdateAccount(_ context.Context, id string, u models.AccountUpdate) error {
	if err := f.enter("UpdateAccount"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	a := f.account(id)
	if a == nil {
		return common.ErrorNotFound
	}
	if u.FullName != nil {
		a.FullName = *u.FullName
	}
	if u.IsActivated != nil {
		a.IsActivated = *u.IsActivated
	}
	if u.AskProductKey != nil {
		a.Settings.AskProductKey = *u.AskProductKey
	}
	if u.IsVerified != nil {
		a.Settings.IsVerified = *u.IsVerified
	}
	if u.VerificationData != nil {
		a.Settings.VerificationData = clone(u.VerificationData)
	}
	return nil
}

func (f *fakeGateway) DeleteAccount(_ context.Context, id string) error {
	if err := f.enter("DeleteAccount"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	n := len(f.accounts)
	f.accounts = slices.DeleteFunc(f.accounts, func(a *models.Account) bool { return a.ID == id })
	if len(f.accounts) == n {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeGateway) ListFiles(_ context.Context, ownerID string) ([]*models.FileRecord, error) {
	if err := f.enter("ListFiles"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	out := []*models.FileRecord{}
	for _, r := range f.files {
		if r.OwnerID == ownerID {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (f *fakeGateway) InsertFile(_ context.Context, n models.NewFile) (*models.FileRecord, error) {
	if err := f.enter("InsertFile"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	r := &models.FileRecord{
		ID:          f.nextID("file"),
		OwnerID:     n.OwnerID,
		Name:        n.Name,
		Size:        n.Size,
		Type:        n.Type,
		StoragePath: n.StoragePath,
	}
	f.files = append(f.files, r)
	return clone(r), nil
}

func (f *fakeGateway) DeleteFileRecord(_ context.Context, id string) error {
	if err := f.enter("DeleteFileRecord"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	n := len(f.files)
	f.files = slices.DeleteFunc(f.files, func(r *models.FileRecord) bool { return r.ID == id })
	if len(f.files) == n {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeGateway) UploadBlob(_ context.Context, path string, data []byte) error {
	if err := f.enter("UploadBlob"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	f.blobs[path] = slices.Clone(data)
	return nil
}

func (f *fakeGateway) DownloadBlob(_ context.Context, path string) ([]byte, error) {
	if err := f.enter("DownloadBlob"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	data, ok := f.blobs[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return slices.Clone(data), nil
}

func (f *fakeGateway) DeleteBlob(_ context.Context, path string) error {
	if err := f.enter("DeleteBlob"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	if err := f.failBlobDelete[path]; err != nil {
		return err
	}
	delete(f.blobs, path)
	return nil
}

func (f *fakeGateway) setFail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, method)
		return
	}
	f.fail[method] = err
}
