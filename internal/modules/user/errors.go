package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongOldPassword = errors.New("old password is incorrect")
	ErrEmailTaken       = errors.New("email already registered")
)
