// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package models

import "time"

// VaultItem represents a single encrypted vault entry.
// It is the primary persistence model for all sensitive user content.
// The secret payload is stored encrypted and opaque to the document store;
// only Title, Type and Metadata are ever readable without the PIN.
type VaultItem struct {
	// ID is the document identifier assigned by the remote store on creation.
	ID string `json:"id"`

	// OwnerID identifies the user owning this item. Every query is scoped to it.
	OwnerID string `json:"owner_id"`

	// Type defines the semantic kind of the stored secret
	// (password, note, card, identity, document).
	// It is informational only and never affects cryptography.
	Type ItemType `json:"type"`

	// Title is the plaintext display name of the item.
	// It is searchable and never encrypted.
	Title string `json:"title"`

	// Ciphertext holds the encrypted secret content.
	// The document store treats this field as an opaque blob.
	// Empty means the item carries no encrypted content (e.g. a document
	// item whose value is purely an attached file reference).
	Ciphertext []byte `json:"ciphertext,omitempty"`

	// Salt is the per-item random value mixed into key derivation.
	// Generated once at creation and immutable for the item's lifetime.
	Salt []byte `json:"salt,omitempty"`

	// IV is the nonce of the last encryption operation.
	// Regenerated on every content change; never reused under the same key.
	IV []byte `json:"iv,omitempty"`

	// Metadata contains non-secret attributes: tags, favorite flag and an
	// optional attached-file reference. Stored in plaintext, separately from
	// the cryptographic parameters above.
	Metadata Metadata `json:"metadata"`

	// CreatedAt is the timestamp when the item was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`

	// AccessedAt is updated on every successful read of the item.
	AccessedAt time.Time `json:"accessed_at"`
}

// HasContent reports whether the item carries encrypted content.
func (v VaultItem) HasContent() bool {
	return len(v.Ciphertext) > 0
}
