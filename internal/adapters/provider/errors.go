package provider

import "errors"

// Sentinel kinds for provider errors. Any of them skips the game.
var (
	ErrTransport       = errors.New("provider transport error")
	ErrStatus          = errors.New("provider returned non-200 status")
	ErrDecode          = errors.New("provider response is not valid JSON")
	ErrUnexpectedShape = errors.New("provider response has unexpected shape")
	ErrCacheMiss       = errors.New("cache miss")
)
