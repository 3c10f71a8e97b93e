// Package models holds the records exchanged between the vault client and
// the persistence gateway.
package models

import (
	"strings"
	"time"
)

// VerificationData is the identity payload a user submits once to get the
// verified badge.
type VerificationData struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	DOB      string `json:"dob"`
	FullName string `json:"full_name"`
}

// Settings are the per-account preferences stored as columns on the
// account row.
type Settings struct {
	AskProductKey    bool              `json:"ask_product_key"`
	IsVerified       bool              `json:"is_verified"`
	VerificationData *VerificationData `json:"verification_data,omitempty"`
}

// DefaultSettings are the values a freshly inserted account gets.
func DefaultSettings() Settings {
	return Settings{AskProductKey: true}
}

type Account struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	ProductKey  string    `json:"product_key"`
	CreatedAt   time.Time `json:"created_at"`
	IsActivated bool      `json:"is_activated"`
	Settings    Settings  `json:"settings"`
}

// NewAccount holds the caller-supplied fields of an account insert. The
// gateway assigns id and created_at.
type NewAccount struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	ProductKey  string `json:"product_key"`
	IsActivated bool   `json:"is_activated"`
}

// AccountUpdate is a partial update: nil fields are left unchanged.
type AccountUpdate struct {
	FullName         *string           `json:"full_name,omitempty"`
	IsActivated      *bool             `json:"is_activated,omitempty"`
	AskProductKey    *bool             `json:"ask_product_key,omitempty"`
	IsVerified       *bool             `json:"is_verified,omitempty"`
	VerificationData *VerificationData `json:"verification_data,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u AccountUpdate) Empty() bool {
	return u.FullName == nil && u.IsActivated == nil && u.AskProductKey == nil &&
		u.IsVerified == nil && u.VerificationData == nil
}

// Initials returns up to two upper-case initials of the account name, or
// "?" when the name is blank.
func (a *Account) Initials() string {
	var initials []rune
	for _, part := range strings.Fields(a.FullName) {
		initials = append(initials, []rune(part)[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return strings.ToUpper(string(initials))
}
