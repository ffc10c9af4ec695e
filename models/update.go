package models

// ItemUpdate describes a partial update of a VaultItem.
// Nil fields are left untouched. A non-nil Content triggers re-encryption:
// the item's salt is kept, a fresh iv is generated, and the new ciphertext
// replaces the old one. Title and Metadata changes are plaintext deltas with
// no cryptographic impact.
type ItemUpdate struct {
	Title    *string
	Content  *string
	Metadata *MetadataPatch
}

// Empty reports whether the update changes nothing.
func (u ItemUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil &&
		(u.Metadata == nil || u.Metadata.Empty())
}
