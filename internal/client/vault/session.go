package vault

import "github.com/dmitrijs2005/forkvault/internal/models"

// Session is the access level of the running client. It is one of
// Unauthenticated, UserSession or AdminSession.
type Session interface {
	session()
}

type Unauthenticated struct{}

// UserSession carries the account resolved at unlock, refreshed by every
// sync.
type UserSession struct {
	Account models.Account
}

// Active reports whether the account passed the activation gate at its
// last refresh.
func (s UserSession) Active() bool {
	return s.Account.IsActivated
}

type AdminSession struct{}

func (Unauthenticated) session() {}
func (UserSession) session()     {}
func (AdminSession) session()    {}

// Authenticated reports whether s is a user or admin session.
func Authenticated(s Session) bool {
	switch s.(type) {
	case UserSession, AdminSession:
		return true
	default:
		return false
	}
}
