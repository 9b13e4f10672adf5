package domain

import "errors"

var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrNoSelection  = errors.New("no post selected")
	ErrCacheMiss    = errors.New("feed cache miss")
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrSecretNotFound is wrapped by secret stores when a key has no value.
var ErrSecretNotFound = errors.New("secret not found")
