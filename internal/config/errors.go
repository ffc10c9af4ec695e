package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid document store settings
	// (unknown backend, or a backend missing its DSN / base URL).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSessionConfigs indicates invalid session settings
	// (for example, a negative session TTL).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
)
