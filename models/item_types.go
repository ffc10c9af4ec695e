package models

// ItemType defines the semantic kind of secret stored inside a VaultItem.
// The value determines how the decrypted content must be interpreted by the
// caller; it has no influence on encryption parameters.
type ItemType string

const (
	// ItemTypePassword represents authentication credentials.
	ItemTypePassword ItemType = "password"

	// ItemTypeNote represents arbitrary secret text.
	ItemTypeNote ItemType = "note"

	// ItemTypeCard represents payment card information.
	ItemTypeCard ItemType = "card"

	// ItemTypeIdentity represents identity documents (passport, licence, etc.).
	ItemTypeIdentity ItemType = "identity"

	// ItemTypeDocument represents an item whose value is an attached file.
	// The file itself lives in external blob storage; the vault keeps only
	// the reference in Metadata and optional encrypted notes about it.
	ItemTypeDocument ItemType = "document"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypePassword, ItemTypeNote, ItemTypeCard, ItemTypeIdentity, ItemTypeDocument:
		return true
	default:
		return false
	}
}
