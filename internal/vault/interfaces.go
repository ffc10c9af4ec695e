package vault

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_service_mock.go -package=mock

import (
	"context"

	"github.com/vaultkit/go-pin-vault/models"
)

// Status is the observable lifecycle state of the vault.
type Status int

const (
	// StatusNoCredential means no PIN has ever been set up on this device.
	StatusNoCredential Status = iota

	// StatusLocked means a PIN exists but no valid session is active.
	StatusLocked

	// StatusUnlocked means a valid session is active and vault operations
	// are permitted.
	StatusUnlocked
)

// CreateParams carries the inputs for creating a vault item.
type CreateParams struct {
	OwnerID  string
	Type     models.ItemType
	Title    string
	Content  string
	Metadata models.Metadata
}

// Service is the CRUD surface of the encrypted vault. Every operation
// first checks that a session is active, re-derives the encryption key
// from the caller-supplied PIN where content is touched (the PIN is never
// cached), and extends the session on success.
type Service interface {
	// SetupPin establishes the device PIN, persists its hash locally and
	// unlocks the vault. Returns ErrValidation for a malformed PIN and
	// the credential manager's error when a PIN already exists.
	SetupPin(pin string) error

	// Unlock verifies pin against the stored credential hash and starts a
	// session on match. Returns ErrAuthenticationFailed on mismatch.
	Unlock(pin string) error

	// Lock clears the session immediately.
	Lock()

	// Status reports whether the vault is set up and unlocked.
	Status() Status

	// Create encrypts content under a freshly generated per-item salt and
	// writes the new item through the document store. Empty content is
	// permitted and stored as empty ciphertext for items whose value is
	// purely an attached file reference.
	Create(ctx context.Context, params CreateParams, pin string) (models.VaultItem, error)

	// List returns all items of the owner ordered by most recently updated
	// first. Content stays encrypted.
	List(ctx context.Context, ownerID string) ([]models.VaultItem, error)

	// Read fetches one item and touches its accessed-at timestamp. It does
	// not decrypt: revealing content is a separate explicit step so the UI
	// can choose to keep it hidden.
	Read(ctx context.Context, ownerID, itemID string) (models.VaultItem, error)

	// DecryptContent re-derives the key from (pin, item.Salt) and decrypts
	// the item's ciphertext using its stored iv. A wrong PIN or corrupt
	// parameters surface as crypto.ErrDecryptionFailed; an item without
	// content yields "" without error.
	DecryptContent(item models.VaultItem, pin string) (string, error)

	// Update applies a partial update. Title and metadata changes are
	// plaintext deltas; a content change reuses the item's salt, generates
	// a brand-new iv and replaces the ciphertext. Writes to one item id
	// are serialized.
	Update(ctx context.Context, ownerID, itemID string, upd models.ItemUpdate, pin string) error

	// Delete removes the item from the document store. No tombstone is
	// kept.
	Delete(ctx context.Context, ownerID, itemID string) error
}
