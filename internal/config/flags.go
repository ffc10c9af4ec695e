package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-b/-backend document store backend: memory, sqlite or rest
//	-d sqlite database file path
//	-r remote document store base URL
//	-session-ttl sliding session lifetime (e.g., "5m", "90s")
//	-request-timeout remote store request timeout (e.g., "30s", "1m")
//	-credential-file local PIN credential file path
//	-c/-config json file path with configs
func ParseFlags() *Config {
	var backend string
	var sqliteDSN string
	var restBaseURL string
	var sessionTTL time.Duration
	var requestTimeout time.Duration
	var credentialFile string
	var jsonConfigPath string

	flag.StringVar(&backend, "b", "", "Document store backend (memory, sqlite, rest)")
	flag.StringVar(&backend, "backend", "", "Document store backend (alias)")
	flag.StringVar(&sqliteDSN, "d", "", "SQLite database file path")
	flag.StringVar(&restBaseURL, "r", "", "Remote document store base URL")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 5m, 90s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote store request timeout (e.g., 30s, 1m)")
	flag.StringVar(&credentialFile, "credential-file", "", "PIN credential file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &Config{
		Session: Session{
			TTL: sessionTTL,
		},
		Storage: Storage{
			Backend: backend,
			SQLite: SQLite{
				DSN: sqliteDSN,
			},
			REST: REST{
				BaseURL: restBaseURL,
				Timeout: requestTimeout,
			},
		},
		Credential: Credential{
			FilePath: credentialFile,
		},
		JSONFilePath: jsonConfigPath,
	}
}
