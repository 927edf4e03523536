package services

import "errors"

var (
	ErrEmptyUsername   = errors.New("username is required")
	ErrEmptyPassword   = errors.New("password is required")
	ErrInvalidPhone    = errors.New("phone number must have at least 9 digits")
	ErrUnknownResource = errors.New("unknown resource")
	ErrForbidden       = errors.New("section is not available for this role")
)
