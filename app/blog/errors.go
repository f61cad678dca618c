package blog

import "errors"

var (
	ErrValidation          = errors.New("all fields are required")
	ErrCredentialsRequired = errors.New("admin ID and password are required")
	ErrNotLoggedIn         = errors.New("admin login required")
	ErrInvalidApproval     = errors.New("approved must be Yes or No")
)
