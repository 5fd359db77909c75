package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrVersionConflict  = errors.New("version number already taken")
	ErrDataIntegrity    = errors.New("data integrity violation")
)

// VersionNumberError reports a stored or submitted number that is not
// the prefix followed by decimal digits.
type VersionNumberError struct {
	Prefix byte
	Value  string
}

func (e *VersionNumberError) Error() string {
	return fmt.Sprintf("malformed version number %q: want %q followed by digits", e.Value, string(e.Prefix))
}

func (e *VersionNumberError) Unwrap() error { return ErrDataIntegrity }
