package services

import "errors"

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrInvalidToken       = errors.New("invalid token")
)
