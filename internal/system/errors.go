package system

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrEmpty         = errors.New("empty")
	ErrInvalidID     = errors.New("invalid species id")
	ErrCannotEvolve  = errors.New("cannot evolve")
	ErrSameOwner     = errors.New("same owner")
)
