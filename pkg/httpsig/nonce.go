package httpsig

import "github.com/google/uuid"

// GenerateNonce returns a fresh opaque nonce suitable for the SignerOptions.Nonce
// field. RFC 9421 places no format requirement on the nonce parameter beyond it
// being a Structured Field string, so a random UUID gives callers replay
// resistance without needing to manage a counter or clock themselves.
func GenerateNonce() string {
	return uuid.NewString()
}
