package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/client/router"
	"github.com/dmitrijs2005/forkvault/internal/client/vault"
	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/models"
)

const timeLayout = "2006-01-02 15:04"

// Show draws the screen the router resolves for the current session.
func (a *App) Show(_ context.Context) error {
	a.render(a.out)
	return nil
}

func (a *App) render(w io.Writer) {
	s := a.vault.Session()
	view := router.Resolve(s, a.router.View())

	switch view {
	case router.SecurityGate:
		renderGate(w)
		return
	case router.Inactive:
		renderInactive(w, s.(vault.UserSession).Account)
		return
	case router.AdminAccounts:
		renderAdminAccounts(w, a.vault.Accounts())
		return
	case router.AdminCreate:
		renderAdminCreate(w)
		return
	}

	acc := s.(vault.UserSession).Account
	settings := a.vault.Settings()
	switch view {
	case router.ProductKey:
		renderProductKey(w, acc)
	case router.Account:
		renderAccount(w, acc, settings)
	case router.Verify:
		renderVerify(w, settings)
	case router.CreateFork:
		renderCreateFork(w, a.vault.MaxUploadSize())
	case router.MyForks:
		renderMyForks(w, a.vault.Files())
	case router.Settings:
		renderSettings(w, settings)
	default:
		renderHome(w, acc, a.vault.Usage())
	}
}

func title(w io.Writer, text string) {
	fmt.Fprintln(w, userTitleStyle.Render(text))
}

func hint(w io.Writer, text string) {
	fmt.Fprintln(w, mutedStyle.Render(text))
}

func renderGate(w io.Writer) {
	title(w, "FORKS SECURITY GATE")
	fmt.Fprintln(w, "This vault is locked. Enter your product key to continue.")
	hint(w, "Type 'unlock' to enter a key.")
}

func renderInactive(w io.Writer, acc models.Account) {
	fmt.Fprintln(w, alertStyle.Render("ACCOUNT NOT ACTIVATED"))
	fmt.Fprintf(w, "Hello %s, your account is waiting for an administrator to activate it.\n", acc.FullName)
	fmt.Fprintln(w, "Until then no features are available.")
	hint(w, "Type 'refresh' to check again or 'logout' to leave.")
}

func mb(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}

func renderHome(w io.Writer, acc models.Account, u vault.Usage) {
	title(w, "Welcome, "+acc.FullName)
	fmt.Fprintln(w, badgeStyle.Render("System active"))
	fmt.Fprintln(w, "Forks keeps your digital assets stored and organized.")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Forks\t%d\n", u.Files)
	fmt.Fprintf(tw, "Used space\t%s\n", mb(u.TotalBytes))
	fmt.Fprintf(tw, "File limit\t%.0f MB\n", float64(u.MaxUploadSize)/(1024*1024))
	_ = tw.Flush()
}

func renderProductKey(w io.Writer, acc models.Account) {
	title(w, "My product key")
	fmt.Fprintln(w, acc.ProductKey)
	hint(w, "Keep this key private: it is the only way into your vault.")
}

func renderAccount(w io.Writer, acc models.Account, s models.Settings) {
	title(w, "My account")
	if s.IsVerified {
		fmt.Fprintln(w, badgeStyle.Render("VERIFIED"))
	}

	name := acc.FullName
	if s.VerificationData != nil && s.VerificationData.FullName != "" {
		name = s.VerificationData.FullName
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Initials\t%s\n", acc.Initials())
	fmt.Fprintf(tw, "Display name\t%s\n", acc.FullName)
	fmt.Fprintf(tw, "Full name\t%s\n", name)
	fmt.Fprintf(tw, "Email\t%s\n", acc.Email)
	if !acc.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Member since\t%s\n", acc.CreatedAt.Local().Format(timeLayout))
	}
	if s.IsVerified && s.VerificationData != nil {
		fmt.Fprintf(tw, "Phone\t%s\n", s.VerificationData.Phone)
		fmt.Fprintf(tw, "Date of birth\t%s\n", s.VerificationData.DOB)
	}
	_ = tw.Flush()

	if !s.IsVerified {
		fmt.Fprintln(w, alertStyle.Render("Verification missing"))
		hint(w, "Type 'verify' to complete it.")
	}
	hint(w, "Type 'rename' to change your display name.")
}

func renderVerify(w io.Writer, s models.Settings) {
	title(w, "Verify my account")
	if s.IsVerified {
		fmt.Fprintln(w, badgeStyle.Render("Your account is verified."))
		fmt.Fprintln(w, "You have full access to every feature.")
		return
	}
	fmt.Fprintln(w, "Submit your full name, email, phone and date of birth once to get the verified badge.")
	hint(w, "Type 'verify' to start. Verification cannot be undone.")
}

func renderCreateFork(w io.Writer, limit int64) {
	title(w, "Create a fork")
	fmt.Fprintf(w, "Upload a file of up to %s.\n", common.FormatSize(limit))
	hint(w, "Type 'upload <path>'.")
}

func renderMyForks(w io.Writer, files []*models.FileRecord) {
	title(w, "My forks")
	if len(files) == 0 {
		fmt.Fprintln(w, "No forks yet.")
		hint(w, "Type 'go create-fork' to add one.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSIZE\tTYPE\tCREATED")
	for i, f := range files {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, f.Name, common.FormatSize(f.Size), typeOrDash(f.Type), formatTime(f.CreatedAt))
	}
	_ = tw.Flush()
	hint(w, "Type 'download <#>' or 'delete <#>'.")
}

func typeOrDash(t string) string {
	if t == "" {
		return "-"
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func renderSettings(w io.Writer, s models.Settings) {
	title(w, "Settings")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Ask product key at start\t%s\n", onOff(s.AskProductKey))
	fmt.Fprintf(tw, "Verified\t%s\n", onOff(s.IsVerified))
	_ = tw.Flush()

	hint(w, "Type 'ask-key on|off', 'delete-all' to remove every fork, or 'go account'.")
}

func renderAdminAccounts(w io.Writer, accounts []*models.Account) {
	fmt.Fprintln(w, adminTitleStyle.Render("FORKS ADMIN CONSOLE · Account management"))
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No accounts.")
		hint(w, "Type 'go admin-create' to add one.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tEMAIL\tPRODUCT KEY\tSTATUS\tCREATED")
	for i, acc := range accounts {
		status := "INACTIVE"
		if acc.IsActivated {
			status = "ACTIVE"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, acc.FullName, acc.Email, acc.ProductKey, status, formatTime(acc.CreatedAt))
	}
	_ = tw.Flush()
	hint(w, "Type 'activate <#>', 'deactivate <#>' or 'remove <#>'.")
}

func renderAdminCreate(w io.Writer) {
	fmt.Fprintln(w, adminTitleStyle.Render("FORKS ADMIN CONSOLE · Create account"))
	fmt.Fprintln(w, "New accounts start inactive. Leave the product key empty to generate one.")
	hint(w, "Type 'create'.")
}

func (a *App) renderMenu(w io.Writer) {
	s := a.vault.Session()
	verified := a.vault.Settings().IsVerified
	if _, ok := s.(vault.AdminSession); ok {
		verified = true
	}

	initials, caption := router.Profile(s, verified)
	fmt.Fprintf(w, "[%s] %s\n", initials, mutedStyle.Render(caption))

	current := router.Resolve(s, a.router.View())
	items := router.Menu(s, verified)
	for i, it := range items {
		label := it.Label
		if it.View == current {
			label = currentStyle.Render(label)
		}
		if it.Badge != "" {
			label += " " + badgeStyle.Render(it.Badge)
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, label)
	}
	fmt.Fprintf(w, "  %d. Log out\n", len(items)+1)
	hint(w, "Type 'go <#>' or 'go <view>'.")
}
