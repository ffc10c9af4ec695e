package crypto

import "errors"

// Sentinel errors returned by KeyChain methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrEncryptionFailed is returned when an underlying platform primitive
	// fails during encryption. Encryption never fails silently.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed is returned when the GCM authentication tag does
	// not verify. This is the mechanism that surfaces a wrong PIN, corrupted
	// ciphertext or a mismatched iv as a hard failure instead of garbage
	// plaintext.
	ErrDecryptionFailed = errors.New("decryption failed")
)
