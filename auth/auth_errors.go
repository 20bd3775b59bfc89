package auth

import "errors"

var (
	InvalidCredentialsErr = errors.New("invalid credentials")
	UserNotFoundErr       = errors.New("user not found")
	UnauthorizedErr       = errors.New("unauthorized")
)
