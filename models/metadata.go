// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package models

// Metadata describes the non-secret attributes of a VaultItem.
// These fields are edited directly by the UI and are stored in plaintext,
// strictly separated from the cryptographic parameters (salt, iv).
type Metadata struct {
	// Tags is a set of free-form labels used for organization.
	Tags []string `json:"tags,omitempty"`

	// Favorite marks the item for quick access.
	Favorite bool `json:"favorite"`

	// FileRef optionally points at an attached document in external blob
	// storage. The vault stores the reference only and never decrypts the
	// attachment itself.
	FileRef *FileRef `json:"file_ref,omitempty"`
}

// FileRef identifies an attached file held in external blob storage.
type FileRef struct {
	// URL is the location or handle of the blob.
	URL string `json:"url"`

	// Name is the original file name shown to the user.
	Name string `json:"name,omitempty"`

	// MIMEType is the declared content type of the file.
	MIMEType string `json:"mime_type,omitempty"`
}

// MetadataPatch is a partial metadata update with explicit tri-state
// semantics per field: nil pointer means "leave unchanged", a non-nil
// pointer means "set to this value", and the Clear flags mean "remove the
// field from storage". A Clear flag wins over a set pointer for the same
// field.
type MetadataPatch struct {
	Tags     *[]string
	Favorite *bool
	FileRef  *FileRef

	ClearTags    bool
	ClearFileRef bool
}

// Apply merges the patch into current and returns the result.
// Unspecified fields are carried over unchanged.
func (p MetadataPatch) Apply(current Metadata) Metadata {
	out := current

	if p.Tags != nil {
		out.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.ClearTags {
		out.Tags = nil
	}

	if p.Favorite != nil {
		out.Favorite = *p.Favorite
	}

	if p.FileRef != nil {
		ref := *p.FileRef
		out.FileRef = &ref
	}
	if p.ClearFileRef {
		out.FileRef = nil
	}

	return out
}

// Empty reports whether the patch changes nothing.
func (p MetadataPatch) Empty() bool {
	return p.Tags == nil && p.Favorite == nil && p.FileRef == nil &&
		!p.ClearTags && !p.ClearFileRef
}
