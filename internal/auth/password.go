package auth

import (
	"errors"
	"strings"
	"unicode"
)

const passwordSpecialChars = "!@#$%^&*()_+{}[]:;<>,.?~-"

var (
	errPasswordTooShort = errors.New("password must be at least 8 characters long")
	errPasswordUpper    = errors.New("password must contain at least one uppercase letter")
	errPasswordLower    = errors.New("password must contain at least one lowercase letter")
	errPasswordDigit    = errors.New("password must contain at least one digit")
	errPasswordSpecial  = errors.New("password must contain at least one special character")
)

// ValidatePassword enforces the account password policy. Checks run in a
// fixed order and the first violated rule is reported.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errPasswordTooShort
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return errPasswordUpper
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return errPasswordLower
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return errPasswordDigit
	}
	if !strings.ContainsAny(password, passwordSpecialChars) {
		return errPasswordSpecial
	}
	return nil
}
