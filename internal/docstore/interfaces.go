package docstore

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/document_store_mock.go -package=mock

// Document is a single stored record: an identifier plus a flat map of
// plaintext-safe fields. Field values are restricted to JSON-compatible
// types (string, bool, int64/float64, []string) so every backend can
// represent them losslessly. Binary values (ciphertext, salt, iv) are
// carried as base64 strings and timestamps as Unix milliseconds; the store
// is never asked to index or interpret cryptographic fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore is the boundary with the remote document store. The vault
// treats it as a dumb key/value store with list-by-collection and
// single-document CRUD; it has no knowledge of cryptography.
//
// All implementations must return ErrNotFound (possibly wrapped) when the
// addressed document does not exist.
type DocumentStore interface {
	// Put creates or overwrites a document in the given collection. When
	// doc.ID is empty the store assigns a new identifier. Returns the
	// document id.
	Put(ctx context.Context, collection string, doc Document) (string, error)

	// Get fetches a single document by id.
	Get(ctx context.Context, collection, id string) (Document, error)

	// List returns every document in the collection ordered by the given
	// field, descending when desc is true.
	List(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error)

	// Delete removes a document. Deleting a missing document returns
	// ErrNotFound.
	Delete(ctx context.Context, collection, id string) error

	// UpdateFields applies a partial update: listed fields replace their
	// stored values, a nil value removes the field from storage, and
	// unlisted fields are left untouched. Partial updates never require
	// re-sending the ciphertext.
	UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error
}
