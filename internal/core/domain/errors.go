package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionInvalid     = errors.New("invalid or expired session")
	ErrMissingToken       = errors.New("session token required")
)

// MissingFieldError reports a required registration field that was absent or
// empty. It renders with the field name so the client can show it verbatim.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// IsMissingField reports whether err is a MissingFieldError.
func IsMissingField(err error) bool {
	var mfe *MissingFieldError
	return errors.As(err, &mfe)
}
