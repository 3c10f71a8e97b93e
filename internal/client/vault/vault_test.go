package vault

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/logging"
	"github.com/dmitrijs2005/forkvault/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVault(gw *fakeGateway, maxUpload int64) *Vault {
	v := New(gw, adminKey, maxUpload, logging.Nop())
	v.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return v
}

func unlockUser(t *testing.T, v *Vault, key string) UserSession {
	t.Helper()
	s, err := v.Unlock(context.Background(), key)
	require.NoError(t, err)
	us, ok := s.(UserSession)
	require.True(t, ok, "expected user session, got %T", s)
	return us
}

func TestVault_StartsUnauthenticated(t *testing.T) {
	v := newVault(newFakeGateway(), 0)

	assert.Equal(t, Unauthenticated{}, v.Session())
	assert.True(t, v.Settings().AskProductKey)
	assert.Equal(t, common.DefaultMaxUploadSize, v.MaxUploadSize())
	assert.ErrorIs(t, v.Sync(context.Background()), common.ErrNotAuthenticated)
}

func TestVault_UnlockUserPopulatesCaches(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	gw.seedFile(acc.ID, "a.txt", []byte("aaa"))
	gw.seedFile(acc.ID, "b.txt", []byte("bb"))
	other := gw.seedAccount("Bob", "K2", true)
	gw.seedFile(other.ID, "c.txt", []byte("c"))

	v := newVault(gw, 0)
	us := unlockUser(t, v, "K1")

	assert.Equal(t, acc.ID, us.Account.ID)
	assert.Len(t, v.Files(), 2)
	assert.Equal(t, Usage{Files: 2, TotalBytes: 5, MaxUploadSize: common.DefaultMaxUploadSize}, v.Usage())
}

func TestVault_UnlockFailureKeepsSession(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	s, err := v.Unlock(context.Background(), "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidProductKey)
	assert.IsType(t, UserSession{}, s)
}

func TestVault_UnlockSurvivesFailedInitialSync(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	gw.setFail("ListFiles", errors.New("down"))

	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	assert.Empty(t, v.Files())
}

func TestVault_AdminUnlockLoadsAccounts(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	gw.seedAccount("Bob", "K2", false)

	v := newVault(gw, 0)
	s, err := v.Unlock(context.Background(), adminKey)
	require.NoError(t, err)
	assert.Equal(t, AdminSession{}, s)
	assert.Len(t, v.Accounts(), 2)
	assert.Zero(t, gw.count("FindAccountByKey"))
}

func TestVault_AutoUnlock(t *testing.T) {
	gw := newFakeGateway()
	asks := gw.seedAccount("Ada", "K1", true)
	quiet := gw.seedAccount("Bob", "K2", true)
	quiet.Settings.AskProductKey = false
	ctx := context.Background()

	v := newVault(gw, 0)

	ok, err := v.AutoUnlock(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.AutoUnlock(ctx, asks.ProductKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Unauthenticated{}, v.Session())

	ok, err = v.AutoUnlock(ctx, adminKey)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = v.AutoUnlock(ctx, "gone")
	assert.ErrorIs(t, err, common.ErrInvalidProductKey)

	ok, err = v.AutoUnlock(ctx, quiet.ProductKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, quiet.ID, v.Session().(UserSession).Account.ID)
}

func TestVault_LogoutClearsEverything(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	gw.seedFile(acc.ID, "a.txt", []byte("a"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	v.Logout()

	assert.Equal(t, Unauthenticated{}, v.Session())
	assert.Empty(t, v.Files())
	assert.Equal(t, models.DefaultSettings(), v.Settings())
}

func TestVault_InactiveUserIsBlocked(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", false)
	rec := gw.seedFile(acc.ID, "a.txt", []byte("a"))
	v := newVault(gw, 0)
	us := unlockUser(t, v, "K1")
	require.False(t, us.Active())
	ctx := context.Background()

	before := gw.total()

	assert.ErrorIs(t, v.Rename(ctx, "New"), common.ErrAccountInactive)
	assert.ErrorIs(t, v.SetAskProductKey(ctx, false), common.ErrAccountInactive)
	assert.ErrorIs(t, v.SubmitVerification(ctx, models.VerificationData{Phone: "1", Email: "e", DOB: "d", FullName: "n"}), common.ErrAccountInactive)
	_, err := v.Upload(ctx, "x.txt", "text/plain", []byte("x"))
	assert.ErrorIs(t, err, common.ErrAccountInactive)
	_, _, err = v.Download(ctx, rec.ID)
	assert.ErrorIs(t, err, common.ErrAccountInactive)
	assert.ErrorIs(t, v.DeleteFile(ctx, rec.ID), common.ErrAccountInactive)
	_, err = v.DeleteAllFiles(ctx)
	assert.ErrorIs(t, err, common.ErrAccountInactive)

	assert.Equal(t, before, gw.total(), "no gateway call may happen for an inactive account")
}

func TestVault_RoleGates(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	ctx := context.Background()

	anon := newVault(gw, 0)
	assert.ErrorIs(t, anon.Rename(ctx, "x"), common.ErrNotAuthenticated)
	assert.ErrorIs(t, anon.SetActivation(ctx, "id", true), common.ErrNotAuthenticated)

	user := newVault(gw, 0)
	unlockUser(t, user, "K1")
	assert.ErrorIs(t, user.SetActivation(ctx, "id", true), common.ErrAdminOnly)
	assert.ErrorIs(t, user.DeleteAccount(ctx, "id"), common.ErrAdminOnly)
	_, err := user.CreateAccount(ctx, models.NewAccount{FullName: "x"})
	assert.ErrorIs(t, err, common.ErrAdminOnly)

	admin := newVault(gw, 0)
	_, err = admin.Unlock(ctx, adminKey)
	require.NoError(t, err)
	assert.ErrorIs(t, admin.Rename(ctx, "x"), common.ErrUserOnly)
	_, err = admin.Upload(ctx, "a", "", []byte("a"))
	assert.ErrorIs(t, err, common.ErrUserOnly)
}

// Admin creates an account, the user is blocked until the admin activates
// it, and the user's next sync lifts the gate.
func TestVault_ActivationScenario(t *testing.T) {
	gw := newFakeGateway()
	ctx := context.Background()

	admin := newVault(gw, 0)
	_, err := admin.Unlock(ctx, adminKey)
	require.NoError(t, err)

	acc, err := admin.CreateAccount(ctx, models.NewAccount{FullName: " Ada Lovelace ", Email: "ada@x.io", ProductKey: "ADA-KEY", IsActivated: true})
	require.NoError(t, err)
	assert.False(t, acc.IsActivated, "new accounts always start inactive")
	assert.Equal(t, "Ada Lovelace", acc.FullName)
	require.Len(t, admin.Accounts(), 1)

	user := newVault(gw, 0)
	us := unlockUser(t, user, "ADA-KEY")
	assert.False(t, us.Active())

	require.NoError(t, admin.SetActivation(ctx, acc.ID, true))
	assert.True(t, admin.Accounts()[0].IsActivated)

	assert.False(t, user.Session().(UserSession).Active(), "open session is not notified")
	require.NoError(t, user.Sync(ctx))
	assert.True(t, user.Session().(UserSession).Active())

	require.NoError(t, admin.SetActivation(ctx, acc.ID, false))
	require.NoError(t, user.Sync(ctx))
	assert.False(t, user.Session().(UserSession).Active())
}

func TestVault_CreateAccountGeneratesKey(t *testing.T) {
	gw := newFakeGateway()
	ctx := context.Background()
	admin := newVault(gw, 0)
	_, err := admin.Unlock(ctx, adminKey)
	require.NoError(t, err)

	acc, err := admin.CreateAccount(ctx, models.NewAccount{FullName: "Bob"})
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Za-z0-9]{5}(-[A-Za-z0-9]{5}){4}$`, acc.ProductKey)

	_, err = admin.CreateAccount(ctx, models.NewAccount{FullName: "Dup", ProductKey: acc.ProductKey})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = admin.CreateAccount(ctx, models.NewAccount{FullName: "  "})
	assert.ErrorIs(t, err, common.ErrEmptyName)
}

func TestVault_DeleteAccountLeavesFiles(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	gw.seedFile(acc.ID, "a.txt", []byte("a"))
	ctx := context.Background()

	admin := newVault(gw, 0)
	_, err := admin.Unlock(ctx, adminKey)
	require.NoError(t, err)

	require.NoError(t, admin.DeleteAccount(ctx, acc.ID))
	assert.Empty(t, admin.Accounts())
	assert.Len(t, gw.files, 1)
	assert.Len(t, gw.blobs, 1)

	assert.ErrorIs(t, admin.DeleteAccount(ctx, acc.ID), common.ErrorNotFound)
}

func TestVault_Verification(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	ctx := context.Background()

	err := v.SubmitVerification(ctx, models.VerificationData{FullName: "Ada"})
	assert.ErrorIs(t, err, ErrIncompleteVerification)
	assert.Zero(t, gw.count("UpdateAccount"))

	payload := models.VerificationData{Phone: "0555 000 00 00", Email: "ada@x.io", DOB: "1815-12-10", FullName: "Ada Lovelace"}
	require.NoError(t, v.SubmitVerification(ctx, payload))
	assert.Equal(t, 1, gw.count("UpdateAccount"), "flag and payload go in one write")

	s := v.Settings()
	assert.True(t, s.IsVerified)
	require.NotNil(t, s.VerificationData)
	assert.Equal(t, payload, *s.VerificationData)
	assert.True(t, gw.account(acc.ID).Settings.IsVerified)

	assert.ErrorIs(t, v.SubmitVerification(ctx, payload), ErrAlreadyVerified)
	assert.True(t, v.Settings().IsVerified)
}

func TestVault_Rename(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	ctx := context.Background()

	assert.ErrorIs(t, v.Rename(ctx, "   "), common.ErrEmptyName)
	assert.Zero(t, gw.count("UpdateAccount"))

	require.NoError(t, v.Rename(ctx, "  Countess  "))
	assert.Equal(t, "Countess", gw.account(acc.ID).FullName)
	assert.Equal(t, "Countess", v.Session().(UserSession).Account.FullName)
}

func TestVault_RenameStaysWhenSyncFails(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	gw.setFail("GetAccount", errors.New("down"))
	require.NoError(t, v.Rename(context.Background(), "Countess"))
	assert.Equal(t, "Countess", v.Session().(UserSession).Account.FullName)
}

func TestVault_SetAskProductKey(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	require.NoError(t, v.SetAskProductKey(context.Background(), false))
	assert.False(t, v.Settings().AskProductKey)
	assert.False(t, gw.account(acc.ID).Settings.AskProductKey)

	gw.setFail("UpdateAccount", errors.New("down"))
	assert.Error(t, v.SetAskProductKey(context.Background(), true))
	assert.False(t, v.Settings().AskProductKey)
}

func TestVault_SyncIsIdempotent(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	gw.seedFile(acc.ID, "a.txt", []byte("a"))
	gw.seedFile(acc.ID, "b.txt", []byte("b"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	ctx := context.Background()

	require.NoError(t, v.Sync(ctx))
	files1, settings1, session1 := v.Files(), v.Settings(), v.Session()
	require.NoError(t, v.Sync(ctx))

	assert.Empty(t, cmp.Diff(files1, v.Files()))
	assert.Empty(t, cmp.Diff(settings1, v.Settings()))
	assert.Empty(t, cmp.Diff(session1, v.Session()))
}

func TestVault_SyncFailureKeepsCaches(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	gw.seedFile(acc.ID, "a.txt", []byte("a"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	ctx := context.Background()

	gw.seedFile(acc.ID, "b.txt", []byte("b"))
	gw.account(acc.ID).FullName = "Changed"
	gw.setFail("ListFiles", errors.New("down"))

	require.Error(t, v.Sync(ctx))
	assert.Len(t, v.Files(), 1)
	assert.Equal(t, "Ada", v.Session().(UserSession).Account.FullName, "no partial merge")
}

func TestVault_SyncWithMissingAccountReplacesRegistryOnly(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	gw.seedFile(acc.ID, "a.txt", []byte("a"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	require.NoError(t, v.SetAskProductKey(context.Background(), false))

	gw.accounts = nil
	gw.seedFile(acc.ID, "b.txt", []byte("b"))

	require.NoError(t, v.Sync(context.Background()))
	assert.Len(t, v.Files(), 2)
	assert.False(t, v.Settings().AskProductKey)
	assert.Equal(t, "Ada", v.Session().(UserSession).Account.FullName)
}

// A five byte text file goes up, shows in the registry, and comes back
// byte for byte.
func TestVault_UploadDownloadScenario(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	ctx := context.Background()

	data := []byte("hello")
	rec, err := v.Upload(ctx, "x.txt", "text/plain", data)
	require.NoError(t, err)

	assert.Equal(t, acc.ID+"/1700000000000_x.txt", rec.StoragePath)
	assert.Equal(t, int64(5), rec.Size)
	assert.Equal(t, "text/plain", rec.Type)

	files := v.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "x.txt", files[0].Name)
	assert.Equal(t, Usage{Files: 1, TotalBytes: 5, MaxUploadSize: common.DefaultMaxUploadSize}, v.Usage())

	got, body, err := v.Download(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, data, body)

	_, _, err = v.Download(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrFileNotFound)
}

func TestVault_UploadSizeLimit(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 8)
	unlockUser(t, v, "K1")
	ctx := context.Background()

	before := gw.total()
	_, err := v.Upload(ctx, "big.bin", "", make([]byte, 9))
	assert.ErrorIs(t, err, common.ErrFileTooLarge)
	assert.Equal(t, before, gw.total(), "oversized upload must not reach the gateway")

	_, err = v.Upload(ctx, "exact.bin", "", make([]byte, 8))
	require.NoError(t, err)
}

func TestVault_UploadNames(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	ctx := context.Background()

	_, err := v.Upload(ctx, "  ", "", []byte("a"))
	assert.ErrorIs(t, err, common.ErrEmptyName)

	rec, err := v.Upload(ctx, "../../etc/passwd", "", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", rec.Name)
	assert.Equal(t, acc.ID+"/1700000000000_passwd", rec.StoragePath)
}

func TestVault_UploadCompensatesFailedInsert(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	gw.setFail("InsertFile", errors.New("db down"))
	_, err := v.Upload(context.Background(), "x.txt", "text/plain", []byte("hello"))
	require.Error(t, err)

	assert.Empty(t, gw.blobs, "blob must be removed when the record insert fails")
	assert.Equal(t, 1, gw.count("DeleteBlob"))
	assert.Empty(t, v.Files())
}

func TestVault_UploadBlobFailureWritesNothing(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	gw.setFail("UploadBlob", errors.New("s3 down"))
	_, err := v.Upload(context.Background(), "x.txt", "", []byte("hello"))
	require.Error(t, err)
	assert.Zero(t, gw.count("InsertFile"))
}

func TestVault_DeleteFile(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	keep := gw.seedFile(acc.ID, "keep.txt", []byte("k"))
	drop := gw.seedFile(acc.ID, "drop.txt", []byte("d"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")
	ctx := context.Background()

	require.NoError(t, v.DeleteFile(ctx, drop.ID))
	files := v.Files()
	require.Len(t, files, 1)
	assert.Equal(t, keep.ID, files[0].ID)
	assert.NotContains(t, gw.blobs, drop.StoragePath)

	assert.ErrorIs(t, v.DeleteFile(ctx, drop.ID), common.ErrFileNotFound)
}

func TestVault_DeleteFileBlobFailureKeepsRecord(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	rec := gw.seedFile(acc.ID, "a.txt", []byte("a"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	gw.failBlobDelete[rec.StoragePath] = errors.New("s3 down")
	require.Error(t, v.DeleteFile(context.Background(), rec.ID))

	assert.Len(t, v.Files(), 1)
	assert.Len(t, gw.files, 1)
	assert.Zero(t, gw.count("DeleteFileRecord"))
}

func TestVault_DeleteFileLocalRemovalStandsWhenSyncFails(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	rec := gw.seedFile(acc.ID, "a.txt", []byte("a"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	gw.setFail("ListFiles", errors.New("down"))
	require.NoError(t, v.DeleteFile(context.Background(), rec.ID))
	assert.Empty(t, v.Files())
}

// Three files, the second blob delete fails: the first and third are
// gone, the second stays, and the failure is reported.
func TestVault_DeleteAllScenario(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	f1 := gw.seedFile(acc.ID, "1.txt", []byte("1"))
	f2 := gw.seedFile(acc.ID, "2.txt", []byte("2"))
	f3 := gw.seedFile(acc.ID, "3.txt", []byte("3"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	blobErr := errors.New("s3 refused")
	gw.failBlobDelete[f2.StoragePath] = blobErr
	listCalls := gw.count("ListFiles")

	deleted, err := v.DeleteAllFiles(context.Background())
	assert.Equal(t, 2, deleted)
	assert.ErrorIs(t, err, blobErr)

	files := v.Files()
	require.Len(t, files, 1)
	assert.Equal(t, f2.ID, files[0].ID)
	assert.NotContains(t, gw.blobs, f1.StoragePath)
	assert.NotContains(t, gw.blobs, f3.StoragePath)
	assert.Contains(t, gw.blobs, f2.StoragePath)
	assert.Equal(t, listCalls+1, gw.count("ListFiles"), "one sync at the end")
}

func TestVault_DeleteAllEmpty(t *testing.T) {
	gw := newFakeGateway()
	gw.seedAccount("Ada", "K1", true)
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	deleted, err := v.DeleteAllFiles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestVault_ConcurrentDeletesOfSameFile(t *testing.T) {
	gw := newFakeGateway()
	acc := gw.seedAccount("Ada", "K1", true)
	rec := gw.seedFile(acc.ID, "a.txt", []byte("a"))
	v := newVault(gw, 0)
	unlockUser(t, v, "K1")

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = v.DeleteFile(context.Background(), rec.ID)
		}()
	}
	wg.Wait()

	ok, notFound := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, common.ErrFileNotFound):
			notFound++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 3, notFound)
	assert.Equal(t, 1, gw.count("DeleteBlob"))
}
