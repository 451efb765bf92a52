package domain

import "errors"

var (
	// ErrNotFound is returned when a resource or profile does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when an authenticated caller is not authorized
	ErrForbidden = errors.New("access denied")

	// ErrDuplicate is returned on uniqueness violations, e.g. a repeat application
	ErrDuplicate = errors.New("duplicate resource")

	// ErrTerminalStatus is returned when transitioning an application out of a terminal status
	ErrTerminalStatus = errors.New("application is in a terminal status")

	// ErrInvalidStatus is returned when a raw status value is not in the enum
	ErrInvalidStatus = errors.New("invalid application status")
)
