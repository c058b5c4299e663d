package digest

import (
	"fmt"
	"sort"

	"github.com/go-httpsig/rfc9421/pkg/sfv"
)

// FormatContentDigest renders a map of algorithm name to raw digest bytes as
// an RFC 8941 Dictionary suitable for the Content-Digest header, e.g.
// "sha-256=:uU0nuZ...:, sha-512=:WZDPaVn...:". Algorithm names are sorted
// alphabetically so the output is deterministic across map iteration order.
//
// It reuses pkg/sfv's own Dictionary serializer rather than formatting the
// byte-sequence syntax by hand, so a Content-Digest value round-trips
// through the same codec that parses it back in ParseContentDigest.
func FormatContentDigest(digests map[string][]byte) (string, error) {
	if len(digests) == 0 {
		return "", fmt.Errorf("digests map cannot be nil or empty")
	}

	algorithms := make([]string, 0, len(digests))
	for alg, sum := range digests {
		if alg == "" {
			return "", fmt.Errorf("algorithm name cannot be empty")
		}
		if len(sum) == 0 {
			return "", fmt.Errorf("digest for algorithm %q cannot be nil or empty", alg)
		}
		algorithms = append(algorithms, alg)
	}
	sort.Strings(algorithms)

	dict := &sfv.Dictionary{
		Keys:   algorithms,
		Values: make(map[string]interface{}, len(algorithms)),
	}
	for _, alg := range algorithms {
		dict.Values[alg] = sfv.Item{Value: digests[alg]}
	}

	return sfv.SerializeDictionary(dict)
}
