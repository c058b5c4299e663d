package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// minHMACKeyBytes is the shortest shared secret this package accepts. RFC
// 2104 recommends a key at least as long as the hash output (32 bytes for
// SHA-256); 16 is the floor below which the key stops contributing entropy
// proportional to the MAC's claimed security level.
const minHMACKeyBytes = 16

// hmacSHA256Algorithm is symmetric HMAC-SHA256 (RFC 9421 Section 3.3.5): a
// 32-byte deterministic MAC over a shared secret, the cheapest algorithm in
// the registry but unsuitable for anything but service-to-service auth
// where both ends can hold the same key.
type hmacSHA256Algorithm struct{}

func (a *hmacSHA256Algorithm) ID() string { return "hmac-sha256" }

func hmacSecret(key interface{}) ([]byte, error) {
	secretKey, ok := key.([]byte)
	if !ok {
		return nil, fmt.Errorf("key must be []byte for hmac-sha256, got %T", key)
	}
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("HMAC shared secret is nil or empty")
	}
	if len(secretKey) < minHMACKeyBytes {
		return nil, fmt.Errorf("HMAC key too short: %d bytes (minimum %d bytes required, 32 bytes recommended)", len(secretKey), minHMACKeyBytes)
	}
	return secretKey, nil
}

func (a *hmacSHA256Algorithm) Sign(signatureBase []byte, key interface{}) ([]byte, error) {
	if len(signatureBase) == 0 {
		return nil, fmt.Errorf("signature base cannot be empty")
	}
	secretKey, err := hmacSecret(key)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(signatureBase)
	return mac.Sum(nil), nil
}

func (a *hmacSHA256Algorithm) Verify(signatureBase, signature []byte, key interface{}) error {
	if len(signatureBase) == 0 {
		return fmt.Errorf("signature base cannot be empty")
	}
	if len(signature) == 0 {
		return fmt.Errorf("signature cannot be empty")
	}
	if len(signature) != sha256.Size {
		return fmt.Errorf("HMAC-SHA256 signature must be %d bytes, got %d bytes", sha256.Size, len(signature))
	}
	secretKey, err := hmacSecret(key)
	if err != nil {
		return err
	}
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(signatureBase)
	expectedMAC := mac.Sum(nil)

	// crypto/subtle to keep verification failure indistinguishable in
	// timing from a mismatch at any particular byte.
	if subtle.ConstantTimeCompare(signature, expectedMAC) != 1 {
		return fmt.Errorf("hmac-sha256 signature verification failed")
	}
	return nil
}

func init() {
	RegisterAlgorithm(&hmacSHA256Algorithm{})
}
