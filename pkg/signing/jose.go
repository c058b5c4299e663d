package signing

import "fmt"

// joseAliases maps JOSE (RFC 7518) algorithm names to the RFC 9421 native
// algorithm identifiers registered in this package. JOSE naming is a useful
// collaborator for callers whose key material or configuration already
// speaks JOSE, but it is not part of the core algorithm registry: every
// alias here must resolve to an identifier already returned by
// SupportedAlgorithms.
var joseAliases = map[string]string{
	"RS256": "rsa-v1_5-sha256",
	"PS512": "rsa-pss-sha512",
	"ES256": "ecdsa-p256-sha256",
	"ES384": "ecdsa-p384-sha384",
	"ES256K": "ecdsa-secp256k1-sha256",
	"HS256": "hmac-sha256",
	"EdDSA": "ed25519",
}

// JOSEAlgorithmID translates a JOSE algorithm name (as found in a JWS
// header's "alg" field or a JWK's "alg" member) to the RFC 9421 algorithm
// identifier it corresponds to.
//
// Only JOSE names with a direct, unambiguous RFC 9421 equivalent are
// accepted; PS256 and PS384 have no RFC 9421 counterpart (the core only
// defines rsa-pss-sha512) and are rejected rather than silently rehashed
// under a different digest.
func JOSEAlgorithmID(joseAlg string) (string, error) {
	id, ok := joseAliases[joseAlg]
	if !ok {
		return "", fmt.Errorf("no RFC 9421 algorithm identifier for JOSE algorithm %q", joseAlg)
	}
	if _, err := GetAlgorithm(id); err != nil {
		return "", fmt.Errorf("JOSE algorithm %q maps to unregistered algorithm %q: %w", joseAlg, id, err)
	}
	return id, nil
}

// GetAlgorithmByJOSEName is a convenience wrapper combining JOSEAlgorithmID
// and GetAlgorithm for callers that only ever have a JOSE algorithm name on
// hand (for example, one read out of a JWK's "alg" member).
func GetAlgorithmByJOSEName(joseAlg string) (Algorithm, error) {
	id, err := JOSEAlgorithmID(joseAlg)
	if err != nil {
		return nil, err
	}
	return GetAlgorithm(id)
}
