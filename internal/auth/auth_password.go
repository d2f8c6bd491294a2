package auth

import (
	"strings"

	autherrors "go-nexushr/internal/auth/errors"
)

const (
	minPasswordLength         = 6
	minRecoveryPasswordLength = 8
	// bcrypt rejects longer inputs.
	maxPasswordBytes = 72
)

// ValidateSignUpPassword: confirmation must match and length >= 6.
func ValidateSignUpPassword(password, confirm string) error {
	if password != confirm {
		return autherrors.ErrPasswordMismatch
	}
	if len([]rune(password)) < minPasswordLength {
		return autherrors.ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return autherrors.ErrPasswordTooLong
	}
	return nil
}

// ValidateRecoveryPassword is the stricter rule of the recovery screen:
// length >= 8, at least one digit, confirmation must match.
func ValidateRecoveryPassword(password, confirm string) error {
	if len([]rune(password)) < minRecoveryPasswordLength {
		return autherrors.ErrRecoveryPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return autherrors.ErrPasswordTooLong
	}
	if !strings.ContainsAny(password, "0123456789") {
		return autherrors.ErrPasswordNeedsDigit
	}
	if password != confirm {
		return autherrors.ErrPasswordMismatch
	}
	return nil
}

// ValidateSettingsPassword only enforces the length bounds.
func ValidateSettingsPassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return autherrors.ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return autherrors.ErrPasswordTooLong
	}
	return nil
}
