package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when attempting to create a user with a
	// username that already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrBlankCredentials is returned when username or password is blank.
	ErrBlankCredentials = errors.New("username and password are required")

	// ErrInvalidCredentials is returned on login when the username is
	// unknown or the password does not match. Deliberately generic so the
	// two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
