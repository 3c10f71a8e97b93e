package vault

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/forkvault/internal/common"
	"github.com/dmitrijs2005/forkvault/internal/gateway"
)

// Classifier maps a product key to a session. The admin key never reaches
// the gateway.
type Classifier struct {
	adminKey string
	accounts gateway.Accounts
}

func NewClassifier(adminKey string, accounts gateway.Accounts) *Classifier {
	return &Classifier{adminKey: adminKey, accounts: accounts}
}

// Classify returns AdminSession for the admin key and a UserSession for a
// key that matches an account. Every other outcome, gateway failures
// included, is common.ErrInvalidProductKey.
func (c *Classifier) Classify(ctx context.Context, productKey string) (Session, error) {
	if productKey == "" {
		return Unauthenticated{}, common.ErrInvalidProductKey
	}
	if c.adminKey != "" && subtle.ConstantTimeCompare([]byte(productKey), []byte(c.adminKey)) == 1 {
		return AdminSession{}, nil
	}

	acc, err := c.accounts.FindAccountByKey(ctx, productKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return Unauthenticated{}, common.ErrInvalidProductKey
		}
		return Unauthenticated{}, fmt.Errorf("%w: %w", common.ErrInvalidProductKey, err)
	}
	if acc == nil {
		return Unauthenticated{}, common.ErrInvalidProductKey
	}
	return UserSession{Account: *acc}, nil
}
