// Package signing implements the RFC 9421 Section 3.3 signature algorithms:
// RSA-PSS, RSA-PKCS1-v1.5, ECDSA (P-256, P-384, secp256k1), Ed25519, and
// HMAC-SHA256. It knows nothing about HTTP or Structured Field Values — it
// only turns a signature base ([]byte) plus a key into a signature, or
// checks one, per RFC 9421 Section 3.1/3.2.
package signing

import "fmt"

// Algorithm signs and verifies over an already-built signature base. Key
// types are algorithm-specific: RSA algorithms take *rsa.PrivateKey /
// *rsa.PublicKey, ECDSA takes *ecdsa.PrivateKey / *ecdsa.PublicKey, Ed25519
// takes ed25519.PrivateKey / ed25519.PublicKey, and HMAC takes a []byte
// shared secret for both directions.
type Algorithm interface {
	// ID returns the RFC 9421 Section 3.3 algorithm identifier, e.g.
	// "rsa-pss-sha512" or "hmac-sha256".
	ID() string

	// Sign returns the raw (not base64-encoded) signature over signatureBase.
	Sign(signatureBase []byte, key interface{}) ([]byte, error)

	// Verify returns nil if signature is valid over signatureBase under key,
	// or a non-nil error otherwise. Implementations must use a constant-time
	// comparison where the underlying scheme is symmetric (HMAC).
	Verify(signatureBase, signature []byte, key interface{}) error
}

var algorithmRegistry = make(map[string]Algorithm)

// RegisterAlgorithm adds alg to the global registry under alg.ID(). It is
// meant to be called from each algorithm file's init(), so a duplicate ID
// is a programming error in this package, not a runtime condition callers
// need to handle — hence the panic rather than an error return.
func RegisterAlgorithm(alg Algorithm) {
	id := alg.ID()
	if _, exists := algorithmRegistry[id]; exists {
		panic(fmt.Sprintf("signing: algorithm %q already registered", id))
	}
	algorithmRegistry[id] = alg
}

// GetAlgorithm looks up a registered Algorithm by its RFC 9421 identifier.
func GetAlgorithm(id string) (Algorithm, error) {
	if id == "" {
		return nil, fmt.Errorf("algorithm ID cannot be empty")
	}
	alg, exists := algorithmRegistry[id]
	if !exists {
		return nil, fmt.Errorf("unsupported algorithm: %q", id)
	}
	return alg, nil
}

// SupportedAlgorithms lists every registered algorithm identifier, in no
// particular order.
func SupportedAlgorithms() []string {
	ids := make([]string, 0, len(algorithmRegistry))
	for id := range algorithmRegistry {
		ids = append(ids, id)
	}
	return ids
}
