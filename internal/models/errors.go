package models

import "errors"

// Error kinds shared by every layer. Callers match them with errors.Is.
var (
	// ErrNotFound is returned when an identifier, group or file is absent.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a rename or add would collide.
	ErrAlreadyExists = errors.New("already exists")
	// ErrParse is returned when a persisted group file cannot be decoded.
	ErrParse = errors.New("malformed group file")
	// ErrInvalidGroup is returned for group names that sanitize to nothing.
	ErrInvalidGroup = errors.New("invalid group name")
	// ErrEmptyCommand is returned when a command text is blank.
	ErrEmptyCommand = errors.New("command text is empty")
	// ErrNoStoreRoot is returned when an operation needs a store root and
	// discovery found none.
	ErrNoStoreRoot = errors.New("no store root found, run 'sebas init' to create one")
)
