package vault

import "errors"

var (
	ErrAlreadyVerified        = errors.New("account is already verified")
	ErrIncompleteVerification = errors.New("verification requires full name, email, phone and date of birth")
)
