package vault

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	keyGroups   = 5
	keyGroupLen = 5
)

// GenerateProductKey returns a fresh key of five dash-separated groups of
// five alphanumerics, e.g. "aB3dE-fG5hI-...".
func GenerateProductKey() (string, error) {
	limit := big.NewInt(int64(len(keyAlphabet)))
	groups := make([]string, keyGroups)
	for g := range groups {
		var b strings.Builder
		for range keyGroupLen {
			n, err := rand.Int(rand.Reader, limit)
			if err != nil {
				return "", err
			}
			b.WriteByte(keyAlphabet[n.Int64()])
		}
		groups[g] = b.String()
	}
	return strings.Join(groups, "-"), nil
}
