// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package config

import "time"

// applyDefaults fills unset fields with working defaults so a bare
// invocation of the client runs against an in-memory store.
func (cfg *Config) applyDefaults() {
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 5 * time.Minute
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendMemory
	}
	if cfg.Credential.FilePath == "" {
		cfg.Credential.FilePath = "pin-vault-credential.json"
	}
}

// validate checks that the final merged [Config] satisfies all client
// invariants before it is used at startup.
func (cfg *Config) validate() error {
	switch cfg.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendREST:
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Backend == BackendSQLite && cfg.Storage.SQLite.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.Backend == BackendREST && cfg.Storage.REST.BaseURL == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Session.TTL < 0 {
		return ErrInvalidSessionConfigs
	}

	return nil
}
