package signing

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
)

// rsaPSSSignOptions uses PSSSaltLengthEqualsHash (64 bytes for SHA-512)
// rather than PSSSaltLengthAuto, cutting the random data rsa.SignPSS draws
// per call while staying within RFC 9421 Section 3.3.1's "at least 64
// octets" salt requirement.
var rsaPSSSignOptions = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthEqualsHash,
	Hash:       crypto.SHA512,
}

// rsaPSSVerifyOptions accepts any valid salt length, since a peer's signer
// may not share this package's salt-length choice.
var rsaPSSVerifyOptions = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthAuto,
	Hash:       crypto.SHA512,
}

// asRSAPrivateKey type-asserts key to *rsa.PrivateKey and enforces the
// minimum key size, tagging any failure with algID for a useful error.
func asRSAPrivateKey(key interface{}, algID string) (*rsa.PrivateKey, error) {
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("invalid key type for %s: expected *rsa.PrivateKey, got %T", algID, key)
	}
	if err := validateRSAKeySize(rsaKey.N.BitLen()); err != nil {
		return nil, err
	}
	return rsaKey, nil
}

// asRSAPublicKey is asRSAPrivateKey's verification-side counterpart.
func asRSAPublicKey(key interface{}, algID string) (*rsa.PublicKey, error) {
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("invalid key type for %s: expected *rsa.PublicKey, got %T", algID, key)
	}
	if err := validateRSAKeySize(rsaKey.N.BitLen()); err != nil {
		return nil, err
	}
	return rsaKey, nil
}

// rsaPSSAlgorithm is RSASSA-PSS with SHA-512 (RFC 9421 Section 3.3.1), the
// RFC's recommended RSA scheme.
type rsaPSSAlgorithm struct{}

func (a *rsaPSSAlgorithm) ID() string { return "rsa-pss-sha512" }

func (a *rsaPSSAlgorithm) Sign(signatureBase []byte, key interface{}) ([]byte, error) {
	if len(signatureBase) == 0 {
		return nil, fmt.Errorf("signature base is empty")
	}
	rsaKey, err := asRSAPrivateKey(key, a.ID())
	if err != nil {
		return nil, err
	}
	hash := sha512.Sum512(signatureBase)
	signature, err := rsa.SignPSS(rand.Reader, rsaKey, crypto.SHA512, hash[:], rsaPSSSignOptions)
	if err != nil {
		return nil, fmt.Errorf("RSA-PSS signing failed: %w", err)
	}
	return signature, nil
}

func (a *rsaPSSAlgorithm) Verify(signatureBase, signature []byte, key interface{}) error {
	if len(signatureBase) == 0 {
		return fmt.Errorf("signature base is empty")
	}
	if len(signature) == 0 {
		return fmt.Errorf("signature is empty")
	}
	rsaKey, err := asRSAPublicKey(key, a.ID())
	if err != nil {
		return err
	}
	hash := sha512.Sum512(signatureBase)
	if err := rsa.VerifyPSS(rsaKey, crypto.SHA512, hash[:], signature, rsaPSSVerifyOptions); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// rsaPKCS1v15Algorithm is RSASSA-PKCS1-v1_5 with SHA-256 (RFC 9421 Section
// 3.3.2). RFC 9421 marks it "not recommended for new deployments" — kept
// here for interoperating with peers that only speak it.
type rsaPKCS1v15Algorithm struct{}

func (a *rsaPKCS1v15Algorithm) ID() string { return "rsa-v1_5-sha256" }

func (a *rsaPKCS1v15Algorithm) Sign(signatureBase []byte, key interface{}) ([]byte, error) {
	if len(signatureBase) == 0 {
		return nil, fmt.Errorf("signature base is empty")
	}
	rsaKey, err := asRSAPrivateKey(key, a.ID())
	if err != nil {
		return nil, err
	}
	hash := sha256.Sum256(signatureBase)
	signature, err := rsa.SignPKCS1v15(rand.Reader, rsaKey, crypto.SHA256, hash[:])
	if err != nil {
		return nil, fmt.Errorf("RSA-PKCS1-v1_5 signing failed: %w", err)
	}
	return signature, nil
}

func (a *rsaPKCS1v15Algorithm) Verify(signatureBase, signature []byte, key interface{}) error {
	if len(signatureBase) == 0 {
		return fmt.Errorf("signature base is empty")
	}
	if len(signature) == 0 {
		return fmt.Errorf("signature is empty")
	}
	rsaKey, err := asRSAPublicKey(key, a.ID())
	if err != nil {
		return err
	}
	hash := sha256.Sum256(signatureBase)
	if err := rsa.VerifyPKCS1v15(rsaKey, crypto.SHA256, hash[:], signature); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

func init() {
	RegisterAlgorithm(&rsaPSSAlgorithm{})
	RegisterAlgorithm(&rsaPKCS1v15Algorithm{})
}
