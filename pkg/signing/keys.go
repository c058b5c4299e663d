package signing

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// minRSAKeyBits is the smallest RSA modulus this package accepts, per RFC
// 9421 Section 3.3.4's guidance against weak keys.
const minRSAKeyBits = 2048

// extractDERBytes strips a PEM envelope if data is PEM-encoded, otherwise
// returns data unchanged on the assumption it is already raw DER.
func extractDERBytes(data []byte) []byte {
	if block, _ := pem.Decode(data); block != nil {
		return block.Bytes
	}
	return data
}

// validateRSAKeySize rejects RSA keys below minRSAKeyBits.
func validateRSAKeySize(bitLen int) error {
	if bitLen < minRSAKeyBits {
		return fmt.Errorf("RSA key size %d bits is too small (minimum %d bits required)", bitLen, minRSAKeyBits)
	}
	return nil
}

// asSigningKey narrows an x509-parsed key to the types this package's
// algorithms accept, applying the RSA minimum key size check along the way.
func asSigningKey(key interface{}) (interface{}, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		if err := validateRSAKeySize(k.N.BitLen()); err != nil {
			return nil, err
		}
		return k, nil
	case *rsa.PublicKey:
		if err := validateRSAKeySize(k.N.BitLen()); err != nil {
			return nil, err
		}
		return k, nil
	case *ecdsa.PrivateKey, *ecdsa.PublicKey, ed25519.PrivateKey, ed25519.PublicKey:
		return k, nil
	default:
		return nil, fmt.Errorf("unsupported key type: %T", key)
	}
}

// ParsePrivateKey parses a PEM or DER-encoded private key, trying PKCS#8
// first (it covers RSA, ECDSA, and Ed25519), then PKCS#1 RSA, then SEC1 EC.
// The concrete return type is *rsa.PrivateKey, *ecdsa.PrivateKey, or
// ed25519.PrivateKey.
func ParsePrivateKey(keyData []byte) (interface{}, error) {
	if len(keyData) == 0 {
		return nil, fmt.Errorf("private key data is empty")
	}
	derBytes := extractDERBytes(keyData)

	if key, err := x509.ParsePKCS8PrivateKey(derBytes); err == nil {
		return asSigningKey(key)
	}
	if rsaKey, err := x509.ParsePKCS1PrivateKey(derBytes); err == nil {
		return asSigningKey(rsaKey)
	}
	if ecKey, err := x509.ParseECPrivateKey(derBytes); err == nil {
		return ecKey, nil
	}
	return nil, fmt.Errorf("failed to parse private key: unsupported format or invalid key data")
}

// ParsePublicKey parses a PEM or DER-encoded public key, trying PKIX first
// (it covers RSA, ECDSA, and Ed25519), then PKCS#1 RSA. The concrete return
// type is *rsa.PublicKey, *ecdsa.PublicKey, or ed25519.PublicKey.
func ParsePublicKey(keyData []byte) (interface{}, error) {
	if len(keyData) == 0 {
		return nil, fmt.Errorf("public key data is empty")
	}
	derBytes := extractDERBytes(keyData)

	if key, err := x509.ParsePKIXPublicKey(derBytes); err == nil {
		return asSigningKey(key)
	}
	if rsaKey, err := x509.ParsePKCS1PublicKey(derBytes); err == nil {
		return asSigningKey(rsaKey)
	}
	return nil, fmt.Errorf("failed to parse public key: unsupported format or invalid key data")
}

// The Parse*PrivateKey/Parse*PublicKey functions below are strict variants
// of ParsePrivateKey/ParsePublicKey: each accepts exactly one wire format
// instead of trying several, for callers that already know what they hold.

// ParsePKCS1PrivateKey parses an RSA private key in PKCS#1 format only.
func ParsePKCS1PrivateKey(keyData []byte) (*rsa.PrivateKey, error) {
	if len(keyData) == 0 {
		return nil, fmt.Errorf("private key data is empty")
	}
	rsaKey, err := x509.ParsePKCS1PrivateKey(extractDERBytes(keyData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PKCS#1 private key: %w", err)
	}
	if err := validateRSAKeySize(rsaKey.N.BitLen()); err != nil {
		return nil, err
	}
	return rsaKey, nil
}

// ParsePKCS8PrivateKey parses a private key in PKCS#8 format only. The
// concrete return type is *rsa.PrivateKey, *ecdsa.PrivateKey, or
// ed25519.PrivateKey.
func ParsePKCS8PrivateKey(keyData []byte) (interface{}, error) {
	if len(keyData) == 0 {
		return nil, fmt.Errorf("private key data is empty")
	}
	key, err := x509.ParsePKCS8PrivateKey(extractDERBytes(keyData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PKCS#8 private key: %w", err)
	}
	return asSigningKey(key)
}

// ParseSEC1PrivateKey parses an ECDSA private key in SEC1 format only.
func ParseSEC1PrivateKey(keyData []byte) (*ecdsa.PrivateKey, error) {
	if len(keyData) == 0 {
		return nil, fmt.Errorf("private key data is empty")
	}
	ecKey, err := x509.ParseECPrivateKey(extractDERBytes(keyData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SEC1 private key: %w", err)
	}
	return ecKey, nil
}

// ParsePKIXPublicKey parses a public key in PKIX format only. The concrete
// return type is *rsa.PublicKey, *ecdsa.PublicKey, or ed25519.PublicKey.
func ParsePKIXPublicKey(keyData []byte) (interface{}, error) {
	if len(keyData) == 0 {
		return nil, fmt.Errorf("public key data is empty")
	}
	key, err := x509.ParsePKIXPublicKey(extractDERBytes(keyData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PKIX public key: %w", err)
	}
	return asSigningKey(key)
}

// ParsePKCS1PublicKey parses an RSA public key in PKCS#1 format only.
func ParsePKCS1PublicKey(keyData []byte) (*rsa.PublicKey, error) {
	if len(keyData) == 0 {
		return nil, fmt.Errorf("public key data is empty")
	}
	rsaKey, err := x509.ParsePKCS1PublicKey(extractDERBytes(keyData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PKCS#1 public key: %w", err)
	}
	if err := validateRSAKeySize(rsaKey.N.BitLen()); err != nil {
		return nil, err
	}
	return rsaKey, nil
}
