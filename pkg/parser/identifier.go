package parser

import (
	"encoding/base64"
	"sort"
	"strconv"
	"strings"

	"github.com/go-httpsig/rfc9421/pkg/sfv"
)

// Serialize renders the component identifier per RFC 9421 Section 2.5:
// the quoted name followed by its parameters in insertion order.
func (c ComponentIdentifier) Serialize() string {
	var sb strings.Builder
	sb.WriteByte('"')
	sb.WriteString(c.Name)
	sb.WriteByte('"')
	for _, param := range c.Parameters {
		sb.WriteByte(';')
		sb.WriteString(param.Key)
		writeBareItemParam(&sb, param.Value)
	}
	return sb.String()
}

func writeBareItemParam(sb *strings.Builder, v BareItem) {
	switch val := v.(type) {
	case Boolean:
		if !val.Value {
			sb.WriteString("=?0")
		}
		// bare boolean true carries no "=" suffix
	case String:
		sb.WriteByte('=')
		sb.WriteString(sfv.SerializeString(val.Value))
	case Token:
		sb.WriteByte('=')
		sb.WriteString(val.Value)
	case Integer:
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatInt(val.Value, 10))
	case ByteSequence:
		sb.WriteString("=:")
		sb.WriteString(base64.StdEncoding.EncodeToString(val.Value))
		sb.WriteByte(':')
	}
}

// paramKey renders a single parameter's key/value as a canonical string,
// used to build the sorted multiset key for Equal and Hash. Serialization
// order is irrelevant here; only the (key, value) pair matters.
func paramKey(p Parameter) string {
	var sb strings.Builder
	sb.WriteString(p.Key)
	sb.WriteByte('\x00')
	writeBareItemParam(&sb, p.Value)
	return sb.String()
}

// Equal reports whether two component identifiers share the same name and
// the same unordered multiset of parameters, per RFC 9421 Section 2. This
// intentionally diverges from Serialize, whose output is order-sensitive.
func (c ComponentIdentifier) Equal(other ComponentIdentifier) bool {
	if c.Name != other.Name || len(c.Parameters) != len(other.Parameters) {
		return false
	}
	return canonicalParamSet(c.Parameters) == canonicalParamSet(other.Parameters)
}

// canonicalParamSet computes a sorted, delimited view of a parameter list
// so that equal multisets always produce identical strings regardless of
// insertion order.
func canonicalParamSet(params []Parameter) string {
	keys := make([]string, len(params))
	for i, p := range params {
		keys[i] = paramKey(p)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x01")
}

// Hash returns a value suitable for use as a map key or hash bucket that
// is guaranteed equal for any two component identifiers that satisfy
// Equal, regardless of parameter insertion order.
func (c ComponentIdentifier) Hash() string {
	return c.Name + "\x02" + canonicalParamSet(c.Parameters)
}
