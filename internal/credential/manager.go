// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

// Package credential stores the local one-way PIN hash and answers the two
// questions the vault needs: "was a PIN ever set up?" and "does this PIN
// match?". The raw PIN is never persisted and never transmitted.
package credential

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vaultkit/go-pin-vault/internal/crypto"
)

const minPinLen, maxPinLen = 4, 8

// persistedCredential is the on-disk JSON shape of the credential file.
type persistedCredential struct {
	PinHash   []byte    `json:"pin_hash"`
	CreatedAt time.Time `json:"created_at"`
}

// fileManager is the private file-backed implementation of [Manager].
type fileManager struct {
	path string
	keys crypto.KeyChain

	mu   sync.Mutex
	cred *persistedCredential
}

// NewFileManager constructs a [Manager] backed by a JSON file at path.
// An existing credential file is loaded eagerly so that a corrupt file
// fails at construction time rather than at the first unlock.
func NewFileManager(path string, keys crypto.KeyChain) (Manager, error) {
	m := &fileManager{path: path, keys: keys}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *fileManager) HasCredential() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred != nil
}

func (m *fileManager) Setup(pin string) error {
	if err := ValidatePin(pin); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred != nil {
		return ErrCredentialExists
	}

	cred := &persistedCredential{
		PinHash:   m.keys.HashPin(pin),
		CreatedAt: time.Now().UTC(),
	}
	if err := m.persist(cred); err != nil {
		return err
	}
	m.cred = cred
	return nil
}

func (m *fileManager) Verify(pin string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred == nil {
		return false, ErrNoCredential
	}

	hash := m.keys.HashPin(pin)
	return subtle.ConstantTimeCompare(hash, m.cred.PinHash) == 1, nil
}

// ValidatePin checks the PIN shape: 4 to 8 decimal digits, nothing else.
// Validation happens before hashing so malformed input never reaches the
// crypto layer.
func ValidatePin(pin string) error {
	if len(pin) < minPinLen || len(pin) > maxPinLen {
		return ErrInvalidPin
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidPin
		}
	}
	return nil
}

func (m *fileManager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read credential file: %w", err)
	}

	var cred persistedCredential
	if err = json.Unmarshal(data, &cred); err != nil {
		return fmt.Errorf("decode credential file: %w", err)
	}
	if len(cred.PinHash) == 0 {
		return fmt.Errorf("credential file %s holds no pin hash", m.path)
	}

	m.cred = &cred
	return nil
}

func (m *fileManager) persist(cred *persistedCredential) error {
	dir := filepath.Dir(m.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create credential dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	if err = os.WriteFile(m.path, payload, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}
