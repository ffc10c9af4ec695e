package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from JSON strings like "5m"
// as well as from plain nanosecond numbers.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler for Duration.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v))
		return nil
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", raw)
	}
}

// jsonConfig mirrors [Config] with JSON tags and string durations.
type jsonConfig struct {
	Session struct {
		TTL Duration `json:"ttl"`
	} `json:"session,omitempty"`

	Crypto struct {
		ArgonTime      uint32 `json:"argon_time"`
		ArgonMemoryKiB uint32 `json:"argon_memory_kib"`
		ArgonThreads   uint8  `json:"argon_threads"`
	} `json:"crypto,omitempty"`

	Storage struct {
		Backend string `json:"backend"`
		SQLite  struct {
			DSN string `json:"dsn"`
		} `json:"sqlite,omitempty"`
		REST struct {
			BaseURL string   `json:"base_url"`
			Timeout Duration `json:"timeout"`
		} `json:"rest,omitempty"`
	} `json:"storage,omitempty"`

	Credential struct {
		FilePath string `json:"file_path"`
	} `json:"credential,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		Session: Session{
			TTL: time.Duration(jsonCfg.Session.TTL),
		},
		Crypto: Crypto{
			ArgonTime:      jsonCfg.Crypto.ArgonTime,
			ArgonMemoryKiB: jsonCfg.Crypto.ArgonMemoryKiB,
			ArgonThreads:   jsonCfg.Crypto.ArgonThreads,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			SQLite: SQLite{
				DSN: jsonCfg.Storage.SQLite.DSN,
			},
			REST: REST{
				BaseURL: jsonCfg.Storage.REST.BaseURL,
				Timeout: time.Duration(jsonCfg.Storage.REST.Timeout),
			},
		},
		Credential: Credential{
			FilePath: jsonCfg.Credential.FilePath,
		},
	}

	return cfg, nil
}
