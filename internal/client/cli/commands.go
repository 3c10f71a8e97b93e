package cli

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/forkvault/internal/client/router"
	"github.com/dmitrijs2005/forkvault/internal/client/vault"
	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/filex"
	"github.com/dmitrijs2005/forkvault/internal/models"
)

// getSimpleText, getSecret and saveFile are indirections swapped in tests.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
	saveFile      = filex.SaveInSubdDir
)

const downloadDir = "downloads"

var errAlreadyUnlocked = errors.New("already unlocked, logout first")

func (a *App) helpText() string {
	switch s := a.vault.Session().(type) {
	case vault.AdminSession:
		return "Available commands: menu, go <view|#>, show, sync, create, activate <#|id>, deactivate <#|id>, remove <#|id>, keygen, logout, exit"
	case vault.UserSession:
		if !s.Active() {
			return "Available commands: refresh, logout, exit"
		}
		return "Available commands: menu, go <view|#>, show, sync, rename, verify, upload <path>, download <#|id>, delete <#|id>, delete-all, ask-key on|off, logout, exit"
	default:
		return "Available commands: unlock, keygen, exit"
	}
}

func (a *App) say(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) cancelled(confirmed bool) {
	if !confirmed {
		a.say("Cancelled.")
	}
}

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

func (a *App) confirm(question string) (bool, error) {
	return Confirm(a.reader, question, a.out)
}

// Unlock asks for a product key without echo and opens a session.
func (a *App) Unlock(ctx context.Context) error {
	if vault.Authenticated(a.vault.Session()) {
		return errAlreadyUnlocked
	}

	key, err := getSecret(a.out, "Product key: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	if _, err := a.vault.Unlock(ctx, strings.TrimSpace(string(key))); err != nil {
		return err
	}
	a.router.Reset()
	return a.Show(ctx)
}

// Logout ends the session after confirmation.
func (a *App) Logout(ctx context.Context) error {
	if !vault.Authenticated(a.vault.Session()) {
		return common.ErrNotAuthenticated
	}
	ok, err := a.confirm("Log out?")
	if err != nil {
		return err
	}
	if !ok {
		a.say("Logout cancelled.")
		return nil
	}

	a.vault.Logout()
	a.router.Reset()
	a.say("Logged out.")
	return a.Show(ctx)
}

func (a *App) Sync(ctx context.Context) error {
	if err := a.vault.Sync(ctx); err != nil {
		return err
	}
	return a.Show(ctx)
}

// navigable reports whether the side panel is available: an open,
// activated session.
func (a *App) navigable() error {
	switch s := a.vault.Session().(type) {
	case vault.AdminSession:
		return nil
	case vault.UserSession:
		if !s.Active() {
			return common.ErrAccountInactive
		}
		return nil
	default:
		return common.ErrNotAuthenticated
	}
}

func (a *App) Menu(_ context.Context) error {
	if err := a.navigable(); err != nil {
		return err
	}
	a.router.TogglePanel()
	if !a.router.PanelOpen() {
		a.say("Menu closed.")
		return nil
	}
	a.renderMenu(a.out)
	return nil
}

// Go opens a view by name or by its menu number. The entry after the last
// menu item, and "logout", log out.
func (a *App) Go(ctx context.Context, target string) error {
	if target == router.Logout {
		return a.Logout(ctx)
	}
	if err := a.navigable(); err != nil {
		return err
	}

	if n, err := strconv.Atoi(target); err == nil {
		items := router.Menu(a.vault.Session(), a.vault.Settings().IsVerified)
		switch {
		case n >= 1 && n <= len(items):
			target = string(items[n-1].View)
		case n == len(items)+1:
			return a.Logout(ctx)
		default:
			return fmt.Errorf("no menu entry %d", n)
		}
	}

	a.router.Navigate(target)
	return a.Show(ctx)
}

func (a *App) Rename(ctx context.Context) error {
	if err := a.vault.RequireActiveUser(); err != nil {
		return err
	}
	name, err := a.prompt("New display name")
	if err != nil {
		return err
	}
	if err := a.vault.Rename(ctx, name); err != nil {
		return err
	}
	a.say("Name updated.")
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	if err := a.vault.RequireActiveUser(); err != nil {
		return err
	}
	if a.vault.Settings().IsVerified {
		renderVerify(a.out, a.vault.Settings())
		return nil
	}

	var data models.VerificationData
	fields := []struct {
		label string
		dst   *string
	}{
		{"Full name", &data.FullName},
		{"Email", &data.Email},
		{"Phone", &data.Phone},
		{"Date of birth (YYYY-MM-DD)", &data.DOB},
	}
	for _, f := range fields {
		v, err := a.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if err := a.vault.SubmitVerification(ctx, data); err != nil {
		return err
	}
	a.say(badgeStyle.Render("Your account is verified."))
	return nil
}

// Upload reads a local file and stores it. Files above the limit are
// refused before they are read.
func (a *App) Upload(ctx context.Context, path string) error {
	if err := a.vault.RequireActiveUser(); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > a.vault.MaxUploadSize() {
		return fmt.Errorf("%s is %s: %w", info.Name(), common.FormatSize(info.Size()), common.ErrFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	rec, err := a.vault.Upload(ctx, name, filex.DetectContentType(name, data), data)
	if err != nil {
		return err
	}

	a.say("Uploaded %s (%s).", rec.Name, common.FormatSize(rec.Size))
	a.router.Navigate(string(router.MyForks))
	return a.Show(ctx)
}

// resolveFile turns a list number into a file id. Anything else is taken
// as an id.
func (a *App) resolveFile(ref string) (string, string) {
	files := a.vault.Files()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(files) {
		return files[n-1].ID, files[n-1].Name
	}
	for _, f := range files {
		if f.ID == ref {
			return f.ID, f.Name
		}
	}
	return ref, ref
}

func (a *App) resolveAccount(ref string) (string, string) {
	accounts := a.vault.Accounts()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(accounts) {
		return accounts[n-1].ID, accounts[n-1].FullName
	}
	for _, acc := range accounts {
		if acc.ID == ref {
			return acc.ID, acc.FullName
		}
	}
	return ref, ref
}

func (a *App) Download(ctx context.Context, ref string) error {
	id, _ := a.resolveFile(ref)
	rec, data, err := a.vault.Download(ctx, id)
	if err != nil {
		return err
	}
	path, err := saveFile(downloadDir, rec.Name, data)
	if err != nil {
		return fmt.Errorf("save %s: %w", rec.Name, err)
	}
	a.say("Saved %s to %s.", rec.Name, path)
	return nil
}

func (a *App) Delete(ctx context.Context, ref string) error {
	id, name := a.resolveFile(ref)
	if err := a.vault.RequireActiveUser(); err != nil {
		return err
	}
	ok, err := a.confirm(fmt.Sprintf("Delete %s?", name))
	if err != nil || !ok {
		a.cancelled(ok)
		return err
	}
	if err := a.vault.DeleteFile(ctx, id); err != nil {
		return err
	}
	a.say("Deleted %s.", name)
	return a.Show(ctx)
}

func (a *App) DeleteAll(ctx context.Context) error {
	if err := a.vault.RequireActiveUser(); err != nil {
		return err
	}
	ok, err := a.confirm("All files will be deleted. Are you sure?")
	if err != nil || !ok {
		a.cancelled(ok)
		return err
	}
	n, err := a.vault.DeleteAllFiles(ctx)
	a.say("Deleted %d file(s).", n)
	return err
}

// AskKey turns the start-up product key prompt on or off. Turning it off
// requires the current product key.
func (a *App) AskKey(ctx context.Context, on bool) error {
	if on {
		if err := a.vault.SetAskProductKey(ctx, true); err != nil {
			return err
		}
		a.say("Product key will be asked at start.")
		return nil
	}

	if err := a.vault.RequireActiveUser(); err != nil {
		return err
	}
	s := a.vault.Session().(vault.UserSession)
	key, err := getSecret(a.out, "Current product key: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(string(key))), []byte(s.Account.ProductKey)) != 1 {
		return common.ErrInvalidProductKey
	}

	if err := a.vault.SetAskProductKey(ctx, false); err != nil {
		return err
	}
	a.say("Product key prompt disabled. Start with -k <key> to skip it.")
	return nil
}

func (a *App) CreateAccount(ctx context.Context) error {
	if err := a.vault.RequireAdmin(); err != nil {
		return err
	}

	var n models.NewAccount
	var err error
	if n.FullName, err = a.prompt("Full name"); err != nil {
		return err
	}
	if n.Email, err = a.prompt("Email"); err != nil {
		return err
	}
	if n.ProductKey, err = a.prompt("Product key (empty to generate)"); err != nil {
		return err
	}

	acc, err := a.vault.CreateAccount(ctx, n)
	if err != nil {
		return err
	}
	a.say("Created %s with product key %s. The account is inactive until activated.", acc.FullName, acc.ProductKey)
	a.router.Navigate(string(router.AdminAccounts))
	return a.Show(ctx)
}

func (a *App) SetActivation(ctx context.Context, ref string, active bool) error {
	id, _ := a.resolveAccount(ref)
	if err := a.vault.SetActivation(ctx, id, active); err != nil {
		return err
	}
	return a.Show(ctx)
}

func (a *App) RemoveAccount(ctx context.Context, ref string) error {
	id, name := a.resolveAccount(ref)
	if err := a.vault.RequireAdmin(); err != nil {
		return err
	}
	ok, err := a.confirm(fmt.Sprintf("Delete account %s? Its files are kept.", name))
	if err != nil || !ok {
		a.cancelled(ok)
		return err
	}
	if err := a.vault.DeleteAccount(ctx, id); err != nil {
		return err
	}
	return a.Show(ctx)
}

func (a *App) Keygen(_ context.Context) error {
	key, err := vault.GenerateProductKey()
	if err != nil {
		return err
	}
	a.say("%s", key)
	return nil
}
