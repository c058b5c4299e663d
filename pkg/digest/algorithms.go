// Package digest computes and checks the Content-Digest header (RFC 9530)
// against a message body. It is a helper library the sign/verify boundary
// pairs with covering "content-digest" as a signed field — RFC 9421 never
// requires it and never defines the digest algorithms itself.
//
// Only currently-recommended hash families are exposed: SHA-2, SHA-3, and
// BLAKE2b. MD5, SHA-1, and the legacy checksum algorithms from the earlier
// Digest/Want-Digest header pair are not registered here and cannot be
// selected.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Algorithm names as registered in the IANA Hash Algorithms for HTTP Digest
// Fields registry.
const (
	AlgorithmSHA256    = "sha-256"
	AlgorithmSHA512    = "sha-512"
	AlgorithmSHA512256 = "sha-512/256"
	AlgorithmSHA3256   = "sha3-256"
	AlgorithmSHA3512   = "sha3-512"

	AlgorithmBLAKE2b256 = "blake2b-256"
	AlgorithmBLAKE2b512 = "blake2b-512"
)

// hashFactories maps each supported algorithm name to a constructor for its
// hash.Hash. Keeping this as data rather than a switch statement lets
// SupportedAlgorithms and NewDigester both derive from one place.
var hashFactories = map[string]func() (hash.Hash, error){
	AlgorithmSHA256:    func() (hash.Hash, error) { return sha256.New(), nil },
	AlgorithmSHA512:    func() (hash.Hash, error) { return sha512.New(), nil },
	AlgorithmSHA512256: func() (hash.Hash, error) { return sha512.New512_256(), nil },
	AlgorithmSHA3256:   func() (hash.Hash, error) { return sha3.New256(), nil },
	AlgorithmSHA3512:   func() (hash.Hash, error) { return sha3.New512(), nil },
	AlgorithmBLAKE2b256: func() (hash.Hash, error) {
		return blake2b.New256(nil)
	},
	AlgorithmBLAKE2b512: func() (hash.Hash, error) {
		return blake2b.New512(nil)
	},
}

// digestSizes gives the expected output length in bytes for each supported
// algorithm, used by ParseContentDigest to reject truncated or padded values.
var digestSizes = map[string]int{
	AlgorithmSHA256:     32,
	AlgorithmSHA512256:  32,
	AlgorithmSHA3256:    32,
	AlgorithmBLAKE2b256: 32,
	AlgorithmSHA512:     64,
	AlgorithmSHA3512:    64,
	AlgorithmBLAKE2b512: 64,
}

// SupportedAlgorithms is the set of algorithm names NewDigester accepts.
var SupportedAlgorithms = func() map[string]struct{} {
	set := make(map[string]struct{}, len(hashFactories))
	for name := range hashFactories {
		set[name] = struct{}{}
	}
	return set
}()

// NewDigester returns a fresh hash.Hash for algorithm, for callers that want
// to stream a body through it rather than buffer it. It returns an error for
// any name not in SupportedAlgorithms.
func NewDigester(algorithm string) (hash.Hash, error) {
	factory, ok := hashFactories[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported algorithm %q", algorithm)
	}
	h, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s hasher: %w", algorithm, err)
	}
	return h, nil
}

// ComputeDigest hashes body in one shot. Use NewDigester directly to hash a
// stream without buffering it in memory first.
func ComputeDigest(body []byte, algorithm string) ([]byte, error) {
	h, err := NewDigester(algorithm)
	if err != nil {
		return nil, err
	}
	if _, err := h.Write(body); err != nil {
		return nil, fmt.Errorf("failed to write body to hasher: %w", err)
	}
	return h.Sum(nil), nil
}

func isAlgorithmSupported(algorithm string) bool {
	_, ok := SupportedAlgorithms[algorithm]
	return ok
}

func getExpectedDigestLength(algorithm string) int {
	size, ok := digestSizes[algorithm]
	if !ok {
		return -1
	}
	return size
}
