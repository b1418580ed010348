package repository

import "github.com/pkg/errors"

var (
	ErrNotFound          = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("participant already registered")
	ErrNotRegistered     = errors.New("participant not registered")
)
