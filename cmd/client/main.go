package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vaultkit/go-pin-vault/internal/config"
	"github.com/vaultkit/go-pin-vault/internal/credential"
	"github.com/vaultkit/go-pin-vault/internal/crypto"
	"github.com/vaultkit/go-pin-vault/internal/docstore"
	"github.com/vaultkit/go-pin-vault/internal/logger"
	"github.com/vaultkit/go-pin-vault/internal/session"
	"github.com/vaultkit/go-pin-vault/internal/vault"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("pin-vault-client")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	store, err := docstore.NewStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create document store")
	}

	keys := newKeyChain(cfg.Crypto)

	creds, err := credential.NewFileManager(cfg.Credential.FilePath, keys)
	if err != nil {
		log.Fatal().Err(err).Msg("load pin credential")
	}

	sessions := session.NewManager(cfg.Session.TTL)
	svc := vault.NewService(store, keys, sessions, creds, log)

	log.Info().
		Str("backend", cfg.Storage.Backend).
		Dur("session_ttl", cfg.Session.TTL).
		Bool("has_credential", creds.HasCredential()).
		Msg("vault ready")

	if err = newREPL(svc, localOwnerID, os.Stdin, os.Stdout).run(ctx); err != nil {
		log.Fatal().Err(err).Msg("console error")
	}
}

// localOwnerID scopes all items of this single-user console. Embedding
// applications supply real owner ids from their own account systems.
const localOwnerID = "local"

func newKeyChain(cfg config.Crypto) crypto.KeyChain {
	if cfg.ArgonTime == 0 && cfg.ArgonMemoryKiB == 0 && cfg.ArgonThreads == 0 {
		return crypto.NewKeyChain()
	}
	return crypto.NewKeyChainWithParams(cfg.ArgonTime, cfg.ArgonMemoryKiB, cfg.ArgonThreads)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
