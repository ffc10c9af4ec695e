// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package vault

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/vaultkit/go-pin-vault/internal/docstore"
	"github.com/vaultkit/go-pin-vault/models"
)

// Document field names of a vault item. Cryptographic parameters
// (ciphertext, salt, iv) are opaque to the store and are never indexed or
// queried; metadata fields are the ones the UI edits.
const (
	fieldOwnerID    = "owner_id"
	fieldType       = "type"
	fieldTitle      = "title"
	fieldCiphertext = "ciphertext"
	fieldSalt       = "salt"
	fieldIV         = "iv"
	fieldTags       = "tags"
	fieldFavorite   = "favorite"
	fieldFileURL    = "file_url"
	fieldFileName   = "file_name"
	fieldFileMIME   = "file_mime"
	fieldCreatedAt  = "created_at"
	fieldUpdatedAt  = "updated_at"
	fieldAccessedAt = "accessed_at"
)

// itemToFields flattens a VaultItem into the plaintext-safe document
// representation: binary values as base64 strings, timestamps as Unix
// milliseconds. Absent optional values are omitted entirely rather than
// stored as empty strings.
func itemToFields(item models.VaultItem) map[string]any {
	fields := map[string]any{
		fieldOwnerID:    item.OwnerID,
		fieldType:       string(item.Type),
		fieldTitle:      item.Title,
		fieldFavorite:   item.Metadata.Favorite,
		fieldCreatedAt:  item.CreatedAt.UnixMilli(),
		fieldUpdatedAt:  item.UpdatedAt.UnixMilli(),
		fieldAccessedAt: item.AccessedAt.UnixMilli(),
	}

	if len(item.Ciphertext) > 0 {
		fields[fieldCiphertext] = base64.StdEncoding.EncodeToString(item.Ciphertext)
	}
	if len(item.Salt) > 0 {
		fields[fieldSalt] = base64.StdEncoding.EncodeToString(item.Salt)
	}
	if len(item.IV) > 0 {
		fields[fieldIV] = base64.StdEncoding.EncodeToString(item.IV)
	}

	for k, v := range metadataFields(item.Metadata) {
		if v != nil {
			fields[k] = v
		}
	}

	return fields
}

// metadataFields maps Metadata onto its document fields. Cleared or absent
// values map to nil, which UpdateFields interprets as "remove from
// storage".
func metadataFields(meta models.Metadata) map[string]any {
	fields := map[string]any{
		fieldFavorite: meta.Favorite,
		fieldTags:     nil,
		fieldFileURL:  nil,
		fieldFileName: nil,
		fieldFileMIME: nil,
	}

	if len(meta.Tags) > 0 {
		fields[fieldTags] = append([]string(nil), meta.Tags...)
	}
	if meta.FileRef != nil {
		fields[fieldFileURL] = meta.FileRef.URL
		if meta.FileRef.Name != "" {
			fields[fieldFileName] = meta.FileRef.Name
		}
		if meta.FileRef.MIMEType != "" {
			fields[fieldFileMIME] = meta.FileRef.MIMEType
		}
	}

	return fields
}

// itemFromDocument parses a stored document back into a VaultItem.
// Documents may come from JSON-decoding backends, so numbers appear as
// either int64 or float64 and string lists as []any.
func itemFromDocument(doc docstore.Document) (models.VaultItem, error) {
	item := models.VaultItem{
		ID:      doc.ID,
		OwnerID: stringField(doc.Fields, fieldOwnerID),
		Type:    models.ItemType(stringField(doc.Fields, fieldType)),
		Title:   stringField(doc.Fields, fieldTitle),
		Metadata: models.Metadata{
			Tags:     stringsField(doc.Fields, fieldTags),
			Favorite: boolField(doc.Fields, fieldFavorite),
		},
		CreatedAt:  timeField(doc.Fields, fieldCreatedAt),
		UpdatedAt:  timeField(doc.Fields, fieldUpdatedAt),
		AccessedAt: timeField(doc.Fields, fieldAccessedAt),
	}

	var err error
	if item.Ciphertext, err = bytesField(doc.Fields, fieldCiphertext); err != nil {
		return models.VaultItem{}, fmt.Errorf("decode item %s: %w", doc.ID, err)
	}
	if item.Salt, err = bytesField(doc.Fields, fieldSalt); err != nil {
		return models.VaultItem{}, fmt.Errorf("decode item %s: %w", doc.ID, err)
	}
	if item.IV, err = bytesField(doc.Fields, fieldIV); err != nil {
		return models.VaultItem{}, fmt.Errorf("decode item %s: %w", doc.ID, err)
	}

	if url := stringField(doc.Fields, fieldFileURL); url != "" {
		item.Metadata.FileRef = &models.FileRef{
			URL:      url,
			Name:     stringField(doc.Fields, fieldFileName),
			MIMEType: stringField(doc.Fields, fieldFileMIME),
		}
	}

	return item, nil
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func boolField(fields map[string]any, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

func bytesField(fields map[string]any, key string) ([]byte, error) {
	raw := stringField(fields, key)
	if raw == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("field %s is not base64: %w", key, err)
	}
	return data, nil
}

func stringsField(fields map[string]any, key string) []string {
	switch v := fields[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

func timeField(fields map[string]any, key string) time.Time {
	switch v := fields[key].(type) {
	case int64:
		return time.UnixMilli(v).UTC()
	case float64:
		return time.UnixMilli(int64(v)).UTC()
	default:
		return time.Time{}
	}
}
