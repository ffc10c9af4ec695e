// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package config

import (
	"time"
)

// Storage backends selectable via Storage.Backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendREST   = "rest"
)

// Config is the top-level configuration container for the vault client.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type Config struct {
	// Session holds the vault session lifetime settings.
	Session Session `envPrefix:"SESSION_"`

	// Crypto holds the Argon2id key-derivation tuning parameters.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Storage selects and configures the document store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Credential holds the local PIN credential settings.
	Credential Credential `envPrefix:"CREDENTIAL_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Session holds the time-box applied to the unlocked vault state.
type Session struct {
	// TTL is the sliding expiration window of an unlocked session
	// (e.g. "5m"). Every successful vault operation pushes the expiry
	// forward by this amount.
	// Env: SESSION_TTL
	TTL time.Duration `env:"TTL"`
}

// Crypto holds the Argon2id parameters used for key derivation. Zero
// values fall back to the library defaults (1 iteration, 64 MiB, 4
// threads).
type Crypto struct {
	// ArgonTime is the Argon2id time cost (iterations).
	// Env: CRYPTO_ARGON_TIME
	ArgonTime uint32 `env:"ARGON_TIME"`

	// ArgonMemoryKiB is the Argon2id memory cost in KiB.
	// Env: CRYPTO_ARGON_MEMORY_KIB
	ArgonMemoryKiB uint32 `env:"ARGON_MEMORY_KIB"`

	// ArgonThreads is the Argon2id parallelism degree.
	// Env: CRYPTO_ARGON_THREADS
	ArgonThreads uint8 `env:"ARGON_THREADS"`
}

// Storage selects the document store backend and its settings.
type Storage struct {
	// Backend is one of "memory", "sqlite" or "rest".
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// SQLite holds the local SQLite document database settings.
	SQLite SQLite `envPrefix:"SQLITE_"`

	// REST holds the remote document store API settings.
	REST REST `envPrefix:"REST_"`
}

// SQLite holds settings for the local SQLite document database.
type SQLite struct {
	// DSN is the path of the SQLite database file.
	// Env: STORAGE_SQLITE_DSN
	DSN string `env:"DSN"`
}

// REST holds settings for the remote document store HTTP API.
type REST struct {
	// BaseURL is the root URL of the document store API
	// (e.g. "https://store.example.com").
	// Env: STORAGE_REST_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Timeout is the maximum duration of a single store request.
	// Env: STORAGE_REST_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Credential holds the local PIN credential settings.
type Credential struct {
	// FilePath is the location of the local credential file holding the
	// hashed PIN. The file never leaves the device.
	// Env: CREDENTIAL_FILE_PATH
	FilePath string `env:"FILE_PATH"`
}

// GetConfig loads, merges, and validates the client configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *Config or an error if any source fails to
// load or the final config fails validation.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
