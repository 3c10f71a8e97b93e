// Package vault is the client core: it turns a product key into a session,
// keeps local copies of the account settings, file list and (for admins)
// account list in step with the gateway, and runs every user and admin
// action against the gateway.
//
// All Vault methods are safe for concurrent use; operations run one at a
// time in the order they acquire the vault.
package vault

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/gateway"
	"github.com/dmitrijs2005/forkvault/internal/logging"
	"github.com/dmitrijs2005/forkvault/internal/models"
)

// Usage summarizes the user's stored files for the home screen.
type Usage struct {
	Files         int
	TotalBytes    int64
	MaxUploadSize int64
}

type Vault struct {
	mu sync.Mutex

	gw         gateway.Gateway
	classifier *Classifier
	maxUpload  int64
	logger     logging.Logger
	now        func() time.Time

	session  Session
	settings models.Settings
	files    []*models.FileRecord
	accounts []*models.Account
}

func New(gw gateway.Gateway, adminKey string, maxUpload int64, l logging.Logger) *Vault {
	if maxUpload <= 0 {
		maxUpload = common.DefaultMaxUploadSize
	}
	return &Vault{
		gw:         gw,
		classifier: NewClassifier(adminKey, gw),
		maxUpload:  maxUpload,
		logger:     l.With("module", "vault"),
		now:        time.Now,
		session:    Unauthenticated{},
		settings:   models.DefaultSettings(),
	}
}

// Unlock classifies productKey and, on success, replaces the current
// session and refreshes the caches. A failed refresh is logged; the
// session still stands.
func (v *Vault) Unlock(ctx context.Context, productKey string) (Session, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.classifier.Classify(ctx, productKey)
	if err != nil {
		v.logger.Debug(ctx, "unlock rejected", "error", err)
		return v.session, err
	}
	v.enter(ctx, s)
	return v.session, nil
}

// AutoUnlock opens a session from a saved product key, but only for a user
// who turned off the product key prompt. It reports whether a session was
// opened; a key that does not qualify is not an error.
func (v *Vault) AutoUnlock(ctx context.Context, productKey string) (bool, error) {
	if productKey == "" {
		return false, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.classifier.Classify(ctx, productKey)
	if err != nil {
		return false, err
	}
	us, ok := s.(UserSession)
	if !ok || us.Account.Settings.AskProductKey {
		return false, nil
	}
	v.enter(ctx, s)
	return true, nil
}

func (v *Vault) enter(ctx context.Context, s Session) {
	v.reset()
	v.session = s
	if us, ok := s.(UserSession); ok {
		v.settings = us.Account.Settings
	}
	if err := v.syncLocked(ctx); err != nil {
		v.logger.Warn(ctx, "initial sync failed", "error", err)
	}
}

func (v *Vault) reset() {
	v.session = Unauthenticated{}
	v.settings = models.DefaultSettings()
	v.files = nil
	v.accounts = nil
}

// Logout drops the session and every cached value.
func (v *Vault) Logout() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reset()
}

func (v *Vault) Session() Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session
}

func (v *Vault) Settings() models.Settings {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settings
}

func (v *Vault) Files() []*models.FileRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.files)
}

func (v *Vault) Accounts() []*models.Account {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.accounts)
}

func (v *Vault) MaxUploadSize() int64 {
	return v.maxUpload
}

func (v *Vault) Usage() Usage {
	v.mu.Lock()
	defer v.mu.Unlock()

	u := Usage{Files: len(v.files), MaxUploadSize: v.maxUpload}
	for _, f := range v.files {
		u.TotalBytes += f.Size
	}
	return u
}

// Sync refreshes the caches of the current session from the gateway. On
// failure the caches keep their previous contents.
func (v *Vault) Sync(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.syncLocked(ctx)
}

func (v *Vault) syncLocked(ctx context.Context) error {
	switch s := v.session.(type) {
	case UserSession:
		return v.syncUser(ctx, s)
	case AdminSession:
		return v.syncAdmin(ctx)
	case Unauthenticated:
		return common.ErrNotAuthenticated
	default:
		return fmt.Errorf("unknown session %T", s)
	}
}

func (v *Vault) syncUser(ctx context.Context, s UserSession) error {
	acc, err := v.gw.GetAccount(ctx, s.Account.ID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("sync account: %w", err)
	}
	files, err := v.gw.ListFiles(ctx, s.Account.ID)
	if err != nil {
		return fmt.Errorf("sync files: %w", err)
	}

	if acc != nil {
		v.settings = acc.Settings
		s.Account.FullName = acc.FullName
		s.Account.IsActivated = acc.IsActivated
		s.Account.Settings = acc.Settings
		v.session = s
	}
	v.files = files
	return nil
}

func (v *Vault) syncAdmin(ctx context.Context) error {
	accounts, err := v.gw.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("sync accounts: %w", err)
	}
	v.accounts = accounts
	return nil
}

// syncAfter refreshes after a successful write. The write already
// happened, so a failed refresh is only logged.
func (v *Vault) syncAfter(ctx context.Context, op string) {
	if err := v.syncLocked(ctx); err != nil {
		v.logger.Warn(ctx, "sync after write failed", "op", op, "error", err)
	}
}

func (v *Vault) activeUser() (UserSession, error) {
	switch s := v.session.(type) {
	case UserSession:
		if !s.Active() {
			return s, common.ErrAccountInactive
		}
		return s, nil
	case AdminSession:
		return UserSession{}, common.ErrUserOnly
	default:
		return UserSession{}, common.ErrNotAuthenticated
	}
}

// RequireActiveUser returns the error a user operation would fail with in
// the current session, or nil.
func (v *Vault) RequireActiveUser() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, err := v.activeUser()
	return err
}

// RequireAdmin returns the error an admin operation would fail with in the
// current session, or nil.
func (v *Vault) RequireAdmin() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.admin()
}

func (v *Vault) admin() error {
	switch v.session.(type) {
	case AdminSession:
		return nil
	case UserSession:
		return common.ErrAdminOnly
	default:
		return common.ErrNotAuthenticated
	}
}

// patchUser applies a write that already reached the gateway to the local
// copy, so the cache is right even if the follow-up sync fails.
func (v *Vault) patchUser(s UserSession, u models.AccountUpdate) {
	if u.FullName != nil {
		s.Account.FullName = *u.FullName
	}
	if u.AskProductKey != nil {
		v.settings.AskProductKey = *u.AskProductKey
	}
	if u.IsVerified != nil {
		v.settings.IsVerified = *u.IsVerified
	}
	if u.VerificationData != nil {
		data := *u.VerificationData
		v.settings.VerificationData = &data
	}
	s.Account.Settings = v.settings
	v.session = s
}

func (v *Vault) updateSelf(ctx context.Context, op string, u models.AccountUpdate) error {
	s, err := v.activeUser()
	if err != nil {
		return err
	}
	if err := v.gw.UpdateAccount(ctx, s.Account.ID, u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	v.patchUser(s, u)
	v.syncAfter(ctx, op)
	return nil
}

func (v *Vault) Rename(ctx context.Context, name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.activeUser(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return common.ErrEmptyName
	}
	return v.updateSelf(ctx, "rename", models.AccountUpdate{FullName: &name})
}

func (v *Vault) SetAskProductKey(ctx context.Context, ask bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.updateSelf(ctx, "set ask product key", models.AccountUpdate{AskProductKey: &ask})
}

// SubmitVerification marks the account verified and stores data with it.
// Verification cannot be undone or repeated.
func (v *Vault) SubmitVerification(ctx context.Context, data models.VerificationData) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.activeUser(); err != nil {
		return err
	}
	if v.settings.IsVerified {
		return ErrAlreadyVerified
	}
	data = models.VerificationData{
		Phone:    strings.TrimSpace(data.Phone),
		Email:    strings.TrimSpace(data.Email),
		DOB:      strings.TrimSpace(data.DOB),
		FullName: strings.TrimSpace(data.FullName),
	}
	if data.Phone == "" || data.Email == "" || data.DOB == "" || data.FullName == "" {
		return ErrIncompleteVerification
	}

	verified := true
	return v.updateSelf(ctx, "verify", models.AccountUpdate{IsVerified: &verified, VerificationData: &data})
}

func (v *Vault) SetActivation(ctx context.Context, accountID string, active bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.admin(); err != nil {
		return err
	}
	if err := v.gw.UpdateAccount(ctx, accountID, models.AccountUpdate{IsActivated: &active}); err != nil {
		return fmt.Errorf("set activation: %w", err)
	}
	v.logger.Info(ctx, "activation changed", "account", accountID, "active", active)
	v.syncAfter(ctx, "set activation")
	return nil
}

// DeleteAccount removes the account row only. The account's files and
// blobs are left in place.
func (v *Vault) DeleteAccount(ctx context.Context, accountID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.admin(); err != nil {
		return err
	}
	if err := v.gw.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	v.logger.Info(ctx, "account deleted", "account", accountID)
	v.syncAfter(ctx, "delete account")
	return nil
}

// CreateAccount inserts a new, not yet activated account. An empty product
// key is replaced by a generated one.
func (v *Vault) CreateAccount(ctx context.Context, a models.NewAccount) (*models.Account, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.admin(); err != nil {
		return nil, err
	}
	a.FullName = strings.TrimSpace(a.FullName)
	a.Email = strings.TrimSpace(a.Email)
	a.ProductKey = strings.TrimSpace(a.ProductKey)
	if a.FullName == "" {
		return nil, common.ErrEmptyName
	}
	if a.ProductKey == "" {
		key, err := GenerateProductKey()
		if err != nil {
			return nil, fmt.Errorf("generate product key: %w", err)
		}
		a.ProductKey = key
	}
	a.IsActivated = false

	acc, err := v.gw.InsertAccount(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	v.logger.Info(ctx, "account created", "account", acc.ID)
	v.syncAfter(ctx, "create account")
	return acc, nil
}

// Upload stores data as a new file of the current user. The size limit is
// checked before any gateway call. If the record cannot be written after
// the blob was, the blob is removed again.
func (v *Vault) Upload(ctx context.Context, name, contentType string, data []byte) (*models.FileRecord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.activeUser()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(filepath.Base(filepath.Clean("/" + strings.TrimSpace(name))))
	if name == "" || name == "/" || name == "." {
		return nil, common.ErrEmptyName
	}
	size := int64(len(data))
	if size > v.maxUpload {
		return nil, fmt.Errorf("%s is %d bytes: %w", name, size, common.ErrFileTooLarge)
	}

	path := fmt.Sprintf("%s/%d_%s", s.Account.ID, v.now().UnixMilli(), name)
	if err := v.gw.UploadBlob(ctx, path, data); err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}

	rec, err := v.gw.InsertFile(ctx, models.NewFile{
		OwnerID:     s.Account.ID,
		Name:        name,
		Size:        size,
		Type:        contentType,
		StoragePath: path,
	})
	if err != nil {
		if derr := v.gw.DeleteBlob(ctx, path); derr != nil {
			v.logger.Error(ctx, "orphan blob left after failed insert", "path", path, "error", derr)
		}
		return nil, fmt.Errorf("insert file: %w", err)
	}

	v.files = append(v.files, rec)
	v.syncAfter(ctx, "upload")
	return rec, nil
}

// Download returns a cached file record together with its content.
func (v *Vault) Download(ctx context.Context, fileID string) (*models.FileRecord, []byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.activeUser(); err != nil {
		return nil, nil, err
	}
	rec := v.findFile(fileID)
	if rec == nil {
		return nil, nil, common.ErrFileNotFound
	}
	data, err := v.gw.DownloadBlob(ctx, rec.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("download %s: %w", rec.Name, err)
	}
	return rec, data, nil
}

func (v *Vault) findFile(id string) *models.FileRecord {
	for _, f := range v.files {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// DeleteFile removes the blob and then the record of a cached file. A
// failed blob delete leaves both in place.
func (v *Vault) DeleteFile(ctx context.Context, fileID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.activeUser(); err != nil {
		return err
	}
	if err := v.deleteFile(ctx, fileID); err != nil {
		return err
	}
	v.syncAfter(ctx, "delete file")
	return nil
}

func (v *Vault) deleteFile(ctx context.Context, fileID string) error {
	rec := v.findFile(fileID)
	if rec == nil {
		return common.ErrFileNotFound
	}
	if err := v.gw.DeleteBlob(ctx, rec.StoragePath); err != nil {
		return fmt.Errorf("delete %s: blob: %w", rec.Name, err)
	}
	if err := v.gw.DeleteFileRecord(ctx, rec.ID); err != nil {
		v.logger.Error(ctx, "record left without blob", "file", rec.ID, "error", err)
		return fmt.Errorf("delete %s: record: %w", rec.Name, err)
	}
	v.files = slices.DeleteFunc(v.files, func(f *models.FileRecord) bool { return f.ID == fileID })
	return nil
}

// DeleteAllFiles deletes every cached file one at a time. It keeps going
// past failures and returns the number deleted along with the joined
// errors. Deletions that succeeded are not rolled back.
func (v *Vault) DeleteAllFiles(ctx context.Context) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.activeUser(); err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(v.files))
	for _, f := range v.files {
		ids = append(ids, f.ID)
	}

	var (
		deleted int
		errs    []error
	)
	for _, id := range ids {
		if err := v.deleteFile(ctx, id); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted++
	}
	if len(errs) > 0 {
		v.logger.Warn(ctx, "bulk delete incomplete", "deleted", deleted, "failed", len(errs))
	}

	v.syncAfter(ctx, "delete all files")
	return deleted, errors.Join(errs...)
}
