package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrInvalidPasswordLength   = errors.New("password must be at least 8 characters")
	ErrInvalidRole             = errors.New("invalid role")
	ErrManagerNotFound         = errors.New("manager not found")
	ErrSelfManager             = errors.New("a user cannot be their own manager")
	ErrManagerCycle            = errors.New("manager assignment would create a reporting cycle")
	ErrUserInactive            = errors.New("user is inactive")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrReferenceNotFound       = errors.New("referenced department or job title not found")
)
