package crypto

// KeyChain is responsible for all client-side cryptography of the vault.
// It knows nothing about sessions, storage or users; its only job is to
// derive keys from the PIN and to protect item content with them.
//
// Scheme per item:
//
//	salt      = GenerateSalt()                     (once, at item creation)
//	key       = DeriveKey(pin, salt)               (per operation, never stored)
//	ct, iv    = Encrypt(plaintext, key)            (fresh iv on every call)
//	plaintext = Decrypt(ct, key, iv)
//
// PIN verification uses a separate primitive:
//
//	pinHash   = HashPin(pin)                       (never derives the key)
type KeyChain interface {
	// GenerateSalt returns a random per-item salt (16 bytes / 128 bits).
	// The salt is not a secret; it is stored in the document store so the
	// same PIN yields unlinkable keys across items.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives a 256-bit encryption key from the PIN and salt via
	// Argon2id. Deterministic: the same (pin, salt) pair always yields the
	// same key. The key must exist only for the duration of a single
	// encrypt/decrypt call and must never be persisted or logged.
	DeriveKey(pin string, salt []byte) []byte

	// Encrypt seals plaintext with key using AES-256-GCM. A fresh random
	// nonce is generated internally on every call and returned separately
	// so the caller can persist it as its own document field.
	// Returns ErrEncryptionFailed if the underlying primitive fails.
	Encrypt(plaintext, key []byte) (ciphertext, iv []byte, err error)

	// Decrypt opens ciphertext with key and iv. Returns ErrDecryptionFailed
	// when the authentication tag does not verify: wrong key (wrong PIN),
	// corrupted data, or an iv that does not match the encryption.
	Decrypt(ciphertext, key, iv []byte) ([]byte, error)

	// HashPin computes a one-way hash of the PIN for equality-based local
	// verification. Deliberately a different primitive from DeriveKey so a
	// compromised hash does not leak the encryption key.
	HashPin(pin string) []byte
}
