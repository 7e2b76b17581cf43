package auth

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrUnauthenticated        = errors.New("caller identity is missing")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrNoEmployeeProfile      = errors.New("token is not linked to an employee")
)
