// Package router decides which screen the CLI shows. It holds no I/O: the
// screen is a function of the session and the view the user asked for.
package router

import "github.com/dmitrijs2005/forkvault/internal/client/vault"

type View string

const (
	Home       View = "home"
	ProductKey View = "product-key"
	Account    View = "account"
	Verify     View = "verify"
	CreateFork View = "create-fork"
	MyForks    View = "my-forks"
	Settings   View = "settings"

	AdminAccounts View = "admin-accounts"
	AdminCreate   View = "admin-create"

	// SecurityGate and Inactive cannot be navigated to.
	SecurityGate View = "security-gate"
	Inactive     View = "inactive"
)

// Logout is the menu target that ends the session instead of showing a view.
const Logout = "logout"

var (
	userViews  = []View{Home, ProductKey, Account, Verify, CreateFork, MyForks, Settings}
	adminViews = []View{AdminAccounts, AdminCreate}
)

func contains(views []View, v View) bool {
	for _, x := range views {
		if x == v {
			return true
		}
	}
	return false
}

// Resolve returns the screen to render. The security gate and the
// inactive notice take precedence over the requested view.
func Resolve(s vault.Session, requested View) View {
	switch s := s.(type) {
	case vault.AdminSession:
		if contains(adminViews, requested) {
			return requested
		}
		return AdminAccounts
	case vault.UserSession:
		if !s.Active() {
			return Inactive
		}
		if contains(userViews, requested) {
			return requested
		}
		return Home
	default:
		return SecurityGate
	}
}

// Router is the navigation state: the requested view and whether the side
// panel is open.
type Router struct {
	view      View
	panelOpen bool
}

func New() *Router {
	return &Router{view: Home}
}

func (r *Router) View() View {
	return r.view
}

func (r *Router) PanelOpen() bool {
	return r.panelOpen
}

func (r *Router) TogglePanel() {
	r.panelOpen = !r.panelOpen
}

// Navigate moves to target and closes the panel. It returns true when
// target is Logout; the view is left unchanged in that case so a declined
// logout keeps the user where they were.
func (r *Router) Navigate(target string) (logout bool) {
	if target == Logout {
		return true
	}
	r.view = View(target)
	r.panelOpen = false
	return false
}

// Reset returns to the initial state. Called after a confirmed logout.
func (r *Router) Reset() {
	r.view = Home
	r.panelOpen = false
}

// MenuItem is one side panel entry.
type MenuItem struct {
	View  View
	Label string
	Badge string
}

// Menu lists the side panel entries for s. verified adds the badge to
// the verification entry.
func Menu(s vault.Session, verified bool) []MenuItem {
	switch s.(type) {
	case vault.AdminSession:
		return []MenuItem{
			{View: AdminAccounts, Label: "Account management"},
			{View: AdminCreate, Label: "Create account"},
		}
	case vault.UserSession:
		verify := MenuItem{View: Verify, Label: "Verify my account"}
		if verified {
			verify.Badge = "VERIFIED"
		}
		return []MenuItem{
			{View: Home, Label: "Home"},
			{View: ProductKey, Label: "My product key"},
			{View: Account, Label: "My account"},
			verify,
			{View: CreateFork, Label: "Create a fork"},
			{View: MyForks, Label: "My forks"},
			{View: Settings, Label: "Settings"},
		}
	default:
		return nil
	}
}

// Profile returns the avatar initials and role caption shown under the
// menu.
func Profile(s vault.Session, verified bool) (initials, caption string) {
	switch s := s.(type) {
	case vault.AdminSession:
		return "AD", "System Root"
	case vault.UserSession:
		if verified {
			return s.Account.Initials(), "Verified Member"
		}
		return s.Account.Initials(), "Standard User"
	default:
		return "??", ""
	}
}
