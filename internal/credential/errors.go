package credential

import "errors"

// Sentinel errors returned by the credential manager. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrInvalidPin is returned when the supplied PIN does not satisfy the
	// required shape: 4 to 8 decimal digits. The PIN is rejected before any
	// hashing takes place.
	ErrInvalidPin = errors.New("pin must be 4 to 8 digits")

	// ErrCredentialExists is returned by Setup when a PIN has already been
	// configured on this device. Replacing an existing PIN would require a
	// key-rotation flow re-encrypting every stored item, which is not
	// implemented.
	ErrCredentialExists = errors.New("pin credential already exists")

	// ErrNoCredential is returned by Verify when no PIN has ever been set
	// up, distinguishing "vault never set up" from "vault locked".
	ErrNoCredential = errors.New("no pin credential configured")
)
