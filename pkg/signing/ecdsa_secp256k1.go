package signing

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// ecdsaSecp256k1Algorithm implements the Algorithm interface for ECDSA over
// the secp256k1 curve with SHA-256, registered under the community-assigned
// identifier "ecdsa-secp256k1-sha256" (used by ledger and web3-adjacent
// deployments that need signatures compatible with secp256k1 key material).
//
// Signature format: ASN.1 DER encoding of (r, s), matching the other ECDSA
// algorithms in this package rather than the compact 64-byte form some
// blockchain tooling favors.
type ecdsaSecp256k1Algorithm struct{}

// ID returns the algorithm identifier for ECDSA secp256k1.
func (a *ecdsaSecp256k1Algorithm) ID() string {
	return "ecdsa-secp256k1-sha256"
}

// Sign generates an ECDSA signature over the secp256k1 curve using SHA-256.
//
// Key must be *secp256k1.PrivateKey. Signing is deterministic (RFC 6979),
// as performed by the decred ecdsa.Sign; the result is DER-encoded with
// Signature.Serialize.
func (a *ecdsaSecp256k1Algorithm) Sign(signatureBase []byte, key interface{}) ([]byte, error) {
	if len(signatureBase) == 0 {
		return nil, fmt.Errorf("signature base cannot be empty")
	}

	privKey, ok := key.(*secp256k1.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("key must be *secp256k1.PrivateKey for ecdsa-secp256k1-sha256, got %T", key)
	}
	if privKey == nil {
		return nil, fmt.Errorf("secp256k1 private key is nil")
	}

	hash := sha256.Sum256(signatureBase)
	sig := ecdsa.Sign(privKey, hash[:])

	return sig.Serialize(), nil
}

// Verify validates an ECDSA secp256k1 signature against the signature base.
//
// Key must be *secp256k1.PublicKey.
func (a *ecdsaSecp256k1Algorithm) Verify(signatureBase, signature []byte, key interface{}) error {
	if len(signatureBase) == 0 {
		return fmt.Errorf("signature base cannot be empty")
	}
	if len(signature) == 0 {
		return fmt.Errorf("signature cannot be empty")
	}

	pubKey, ok := key.(*secp256k1.PublicKey)
	if !ok {
		return fmt.Errorf("key must be *secp256k1.PublicKey for ecdsa-secp256k1-sha256, got %T", key)
	}
	if pubKey == nil {
		return fmt.Errorf("secp256k1 public key is nil")
	}

	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return fmt.Errorf("malformed ecdsa-secp256k1-sha256 signature: %w", err)
	}

	hash := sha256.Sum256(signatureBase)
	if !sig.Verify(hash[:], pubKey) {
		return fmt.Errorf("ecdsa-secp256k1-sha256 signature verification failed")
	}

	return nil
}

// ParseSecp256k1PrivateKeyScalar builds a secp256k1 private key from a raw
// 32-byte big-endian scalar, the form most wallet and ledger tooling stores
// keys in rather than PKCS#8/SEC1 DER.
func ParseSecp256k1PrivateKeyScalar(scalar []byte) (*secp256k1.PrivateKey, error) {
	if len(scalar) != 32 {
		return nil, fmt.Errorf("secp256k1 scalar must be 32 bytes, got %d", len(scalar))
	}
	var b [32]byte
	copy(b[:], scalar)
	priv := secp256k1.PrivKeyFromBytes(b[:])
	return priv, nil
}

// ParseSecp256k1PublicKeyCoords builds a secp256k1 public key from its X and Y
// affine coordinates.
func ParseSecp256k1PublicKeyCoords(x, y *big.Int) (*secp256k1.PublicKey, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("secp256k1 public key coordinates cannot be nil")
	}
	var fx, fy secp256k1.FieldVal
	fx.SetByteSlice(x.Bytes())
	fy.SetByteSlice(y.Bytes())
	return secp256k1.NewPublicKey(&fx, &fy), nil
}

func init() {
	RegisterAlgorithm(&ecdsaSecp256k1Algorithm{})
}
