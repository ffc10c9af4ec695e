package credential

// Manager persists and verifies the hashed PIN locally. The hash never
// leaves the device and is never synced to the remote document store: the
// vault's confidentiality is rooted at the device holding the PIN plus the
// remote ciphertext, not at a server-held secret.
type Manager interface {
	// HasCredential reports whether a PIN has ever been set up on this
	// device.
	HasCredential() bool

	// Setup validates the PIN shape, hashes it and stores the hash.
	// Returns ErrInvalidPin for a malformed PIN and ErrCredentialExists
	// when a credential is already present.
	Setup(pin string) error

	// Verify compares the hash of pin against the stored hash using a
	// constant-time comparison. Returns false on mismatch without revealing
	// which position differed, and ErrNoCredential when no PIN was ever
	// set up.
	Verify(pin string) (bool, error)
}
