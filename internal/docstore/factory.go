package docstore

import (
	"context"
	"fmt"

	"github.com/vaultkit/go-pin-vault/internal/config"
	"github.com/vaultkit/go-pin-vault/internal/logger"
)

// NewStore is the factory selecting a [DocumentStore] backend from
// configuration.
func NewStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (DocumentStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil

	case config.BackendSQLite:
		if cfg.SQLite.DSN == "" {
			return nil, fmt.Errorf("sqlite storage requires a DSN")
		}
		return NewSQLiteStore(ctx, cfg.SQLite.DSN, log)

	case config.BackendREST:
		if cfg.REST.BaseURL == "" {
			return nil, fmt.Errorf("rest storage requires a base URL")
		}
		return NewRESTStore(RESTConfig{BaseURL: cfg.REST.BaseURL, Timeout: cfg.REST.Timeout}, log), nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %q", cfg.Backend)
	}
}
