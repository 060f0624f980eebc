package auth

import "errors"

var (
	// ErrUsernameExists indicates a duplicate username.
	ErrUsernameExists = errors.New("username already exists")
	// ErrUserNotFound is returned by repositories when an update or delete misses.
	ErrUserNotFound = errors.New("user not found")
)
