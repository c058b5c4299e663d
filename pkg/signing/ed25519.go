package signing

import (
	"crypto/ed25519"
	"fmt"
)

// ed25519Algorithm is EdDSA over Curve25519 (RFC 9421 Section 3.3.6, RFC
// 8032): fixed-size 64-byte deterministic signatures with no configuration
// knobs — no hash choice, no salt, no key-size tiers.
type ed25519Algorithm struct{}

func (a *ed25519Algorithm) ID() string { return "ed25519" }

func (a *ed25519Algorithm) Sign(signatureBase []byte, key interface{}) ([]byte, error) {
	if len(signatureBase) == 0 {
		return nil, fmt.Errorf("signature base cannot be empty")
	}
	edKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("key must be ed25519.PrivateKey for ed25519, got %T", key)
	}
	if len(edKey) == 0 {
		return nil, fmt.Errorf("ed25519 private key is nil or empty")
	}
	if len(edKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("ed25519 private key must be %d bytes, got %d bytes", ed25519.PrivateKeySize, len(edKey))
	}
	return ed25519.Sign(edKey, signatureBase), nil
}

func (a *ed25519Algorithm) Verify(signatureBase, signature []byte, key interface{}) error {
	if len(signatureBase) == 0 {
		return fmt.Errorf("signature base cannot be empty")
	}
	if len(signature) == 0 {
		return fmt.Errorf("signature cannot be empty")
	}
	if len(signature) != ed25519.SignatureSize {
		return fmt.Errorf("ed25519 signature must be %d bytes, got %d bytes", ed25519.SignatureSize, len(signature))
	}
	edKey, ok := key.(ed25519.PublicKey)
	if !ok {
		return fmt.Errorf("key must be ed25519.PublicKey for ed25519, got %T", key)
	}
	if len(edKey) == 0 {
		return fmt.Errorf("ed25519 public key is nil or empty")
	}
	if len(edKey) != ed25519.PublicKeySize {
		return fmt.Errorf("ed25519 public key must be %d bytes, got %d bytes", ed25519.PublicKeySize, len(edKey))
	}
	if !ed25519.Verify(edKey, signatureBase, signature) {
		return fmt.Errorf("ed25519 signature verification failed")
	}
	return nil
}

func init() {
	RegisterAlgorithm(&ed25519Algorithm{})
}
