package server

import "errors"

// Sentinel errors for request parsing. All map to 400 Bad Request.
var (
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrTooManyImages   = errors.New("too many images")
	ErrInvalidImageURL = errors.New("invalid image URL")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// ErrListen indicates the listen address could not be bound.
var ErrListen = errors.New("failed to listen")
