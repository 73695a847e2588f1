package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input validation failure.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidEmail    = fmt.Errorf("%w: email must be a non-empty string", ErrValidation)
	ErrInvalidTagName  = fmt.Errorf("%w: tag name must be between 1 and 255 characters", ErrValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
)

var (
	ErrUserExists         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrUnauthenticated    = errors.New("authentication credentials were not provided or are invalid")
	ErrForbidden          = errors.New("access forbidden")
	ErrTokenNotFound      = errors.New("token not found")
)
