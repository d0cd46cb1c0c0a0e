// Package validation checks user-supplied fields before they reach a store.
package validation

import (
	"errors"
	"net/mail"
)

const maxEmailLength = 254

// ValidateEmail checks that email is a single bare RFC 5322 address.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}
	if len(email) > maxEmailLength {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address format")
	}

	return nil
}
