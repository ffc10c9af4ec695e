// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// pinHashSalt domain-separates HashPin from DeriveKey. The value is fixed:
// the PIN hash is compared for equality locally and must be deterministic
// across restarts.
const pinHashSalt = "go-pin-vault/credential/v1"

const (
	saltSize = 16
	keySize  = 32
)

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewKeyChain constructs a [KeyChain] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewKeyChain() KeyChain {
	return &keyChain{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}
}

// NewKeyChainWithParams constructs a [KeyChain] with explicit Argon2id
// parameters, typically sourced from configuration. Zero values fall back
// to the defaults of [NewKeyChain].
func NewKeyChainWithParams(time, memoryKiB uint32, threads uint8) KeyChain {
	k := NewKeyChain().(*keyChain)
	if time > 0 {
		k.argonTime = time
	}
	if memoryKiB > 0 {
		k.argonMemory = memoryKiB
	}
	if threads > 0 {
		k.argonThreads = threads
	}
	return k
}

// GenerateSalt implements [KeyChain]. It reads 16 random bytes from the OS
// CSPRNG. Returns an error if the random read fails.
func (k *keyChain) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey implements [KeyChain]. It derives a 256-bit key from the PIN
// and salt using Argon2id with the parameters stored in the receiver.
func (k *keyChain) DeriveKey(pin string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(pin),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		keySize,
	)
}

// Encrypt implements [KeyChain]. It seals plaintext with AES-256-GCM under
// key. The 12-byte nonce is generated fresh on every call and returned as a
// separate value rather than prepended to the ciphertext, because the vault
// persists it as its own document field.
func (k *keyChain) Encrypt(plaintext, key []byte) ([]byte, []byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, fmt.Errorf("%w: generate nonce: %w", ErrEncryptionFailed, err)
	}

	ciphertext := gcm.Seal(nil, iv, plaintext, nil)
	return ciphertext, iv, nil
}

// Decrypt implements [KeyChain]. It opens ciphertext with key and iv and
// verifies the authentication tag. An error here almost always means the
// caller supplied the wrong PIN, producing a wrong key.
func (k *keyChain) Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	if len(iv) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: invalid iv length: %d", ErrDecryptionFailed, len(iv))
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// HashPin implements [KeyChain]. It computes SHA-256(pinHashSalt || pin).
// The fixed salt domain-separates the verification hash from key material
// derived by DeriveKey.
func (k *keyChain) HashPin(pin string) []byte {
	h := sha256.New()
	h.Write([]byte(pinHashSalt))
	h.Write([]byte(pin))
	return h.Sum(nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid key length: %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
