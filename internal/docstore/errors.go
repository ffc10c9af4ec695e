package docstore

import "errors"

// ErrNotFound is returned when the addressed document does not exist in
// the store. Callers should use [errors.Is] to match it.
var ErrNotFound = errors.New("document not found")
