package digest

import (
	"crypto/subtle"
	"fmt"
	"hash"
	"io"
)

// VerifyContentDigestBytes checks a fully-buffered body against the
// Content-Digest header value for every algorithm in requiredAlgorithms,
// using constant-time comparison. It is the entry point httpsig's Verifier
// uses once it has read the whole message body to compute the signature
// base.
func VerifyContentDigestBytes(body []byte, header string, requiredAlgorithms []string) error {
	headerDigests, hashers, err := prepareVerification(header, requiredAlgorithms)
	if err != nil {
		return err
	}

	for algorithm, h := range hashers {
		if _, err := h.Write(body); err != nil {
			return fmt.Errorf("failed to hash body for algorithm %q: %w", algorithm, err)
		}
	}
	return compareDigests(headerDigests, hashers, requiredAlgorithms)
}

// VerifyContentDigest is the streaming counterpart of VerifyContentDigestBytes:
// it hashes reader in a single pass through every required algorithm's
// hasher via io.MultiWriter, so memory use does not grow with body size.
func VerifyContentDigest(reader io.Reader, header string, requiredAlgorithms []string) error {
	headerDigests, hashers, err := prepareVerification(header, requiredAlgorithms)
	if err != nil {
		return err
	}

	writers := make([]io.Writer, 0, len(hashers))
	for _, h := range hashers {
		writers = append(writers, h)
	}
	if _, err := io.Copy(io.MultiWriter(writers...), reader); err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	return compareDigests(headerDigests, hashers, requiredAlgorithms)
}

// prepareVerification parses header and allocates one hasher per required
// algorithm, failing fast if any required algorithm is absent from header.
func prepareVerification(header string, requiredAlgorithms []string) (map[string][]byte, map[string]hash.Hash, error) {
	if len(requiredAlgorithms) == 0 {
		return nil, nil, fmt.Errorf("requiredAlgorithms cannot be empty")
	}

	headerDigests, err := ParseContentDigest(header)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Content-Digest header: %w", err)
	}

	hashers := make(map[string]hash.Hash, len(requiredAlgorithms))
	for _, algorithm := range requiredAlgorithms {
		if _, found := headerDigests[algorithm]; !found {
			return nil, nil, fmt.Errorf("required algorithm %q not found in Content-Digest header", algorithm)
		}
		h, err := NewDigester(algorithm)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create digester for algorithm %q: %w", algorithm, err)
		}
		hashers[algorithm] = h
	}
	return headerDigests, hashers, nil
}

func compareDigests(expected map[string][]byte, hashers map[string]hash.Hash, algorithms []string) error {
	for _, algorithm := range algorithms {
		actual := hashers[algorithm].Sum(nil)
		if subtle.ConstantTimeCompare(actual, expected[algorithm]) != 1 {
			return fmt.Errorf("digest mismatch for algorithm %q: verification failed", algorithm)
		}
	}
	return nil
}
