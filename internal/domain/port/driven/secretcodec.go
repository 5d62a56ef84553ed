package driven

import "errors"

// ErrSecretTampered is returned when a structurally valid envelope fails
// authentication. It indicates tampering or a master key mismatch.
var ErrSecretTampered = errors.New("secret envelope failed authentication")

// SecretCodec seals and opens short secret strings.
type SecretCodec interface {
	// Seal encrypts plaintext into an opaque envelope string.
	Seal(plaintext string) (string, error)

	// Open decrypts an envelope. Empty or malformed envelopes yield ("", nil).
	Open(envelope string) (string, error)
}
