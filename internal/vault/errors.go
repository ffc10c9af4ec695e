package vault

import "errors"

// Sentinel errors of the vault orchestrator. Together with
// [crypto.ErrEncryptionFailed], [crypto.ErrDecryptionFailed] and
// [session.ErrSessionExpired] they form the full error taxonomy of the
// subsystem; callers match them with [errors.Is]. Cryptographic and
// session failures are always surfaced distinctly from storage failures so
// the UI can tell "your PIN is wrong" apart from "the network failed", and
// nothing is ever retried silently.
var (
	// ErrAuthenticationFailed is returned when the supplied PIN does not
	// match the stored credential hash. Recoverable by retry; no state is
	// corrupted.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrValidation is returned for malformed input: a bad PIN shape or
	// missing required fields on create.
	ErrValidation = errors.New("validation failed")

	// ErrStorage wraps any failure at the document store boundary. The
	// underlying error is propagated unchanged and never retried; the
	// idempotency of a retried create or update is the caller's concern.
	ErrStorage = errors.New("document store failure")

	// ErrItemNotFound is returned when the addressed vault item does not
	// exist for the owner.
	ErrItemNotFound = errors.New("vault item not found")
)
