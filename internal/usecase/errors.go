package usecase

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownEntityKind = errors.New("unknown entity kind")
)
