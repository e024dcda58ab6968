package config

import "errors"

// Sentinels returned by Load and Validate.
var (
	ErrInvalidConfig = errors.New("config: invalid value")
	ErrLoadConfig    = errors.New("config: load failed")
)
