// Package parser turns the Signature-Input and Signature HTTP fields into
// typed Go values without touching any cryptography: it is the RFC 9421
// wire-format layer that pkg/httpsig's Signer/Verifier build and consume.
package parser

// ParsedSignatures is the result of parsing a matched Signature-Input /
// Signature header pair: one entry per signature label.
type ParsedSignatures struct {
	Signatures map[string]SignatureEntry
}

// SignatureEntry is everything known about one signature label: which
// components it covers, its metadata parameters, and (once matched against
// the Signature header) its raw bytes.
type SignatureEntry struct {
	Label             string
	CoveredComponents []ComponentIdentifier
	SignatureParams   SignatureParams
	SignatureValue    []byte
}

// ComponentType distinguishes an HTTP field component from a derived
// component (RFC 9421 Sections 2.1 and 2.2). Neither kind is required by the
// RFC itself — callers of this package decide, via VerifyOptions or
// SignerOptions, which components their application needs covered.
type ComponentType int

const (
	// ComponentField is a named HTTP field, e.g. "date" or "content-type".
	// Its value is canonicalized per Section 2.1 before it enters the
	// signature base.
	ComponentField ComponentType = iota

	// ComponentDerived is a value computed from the message itself rather
	// than read from a header, e.g. "@method" or "@path". Every derived
	// component name starts with "@"; validateComponentIdentifier rejects
	// any "@"-prefixed name outside the Section 2.2 registry.
	ComponentDerived
)

// String returns "field" or "derived", or "unknown" for an out-of-range value.
func (ct ComponentType) String() string {
	switch ct {
	case ComponentField:
		return "field"
	case ComponentDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// ComponentIdentifier names one covered component plus the parameters that
// modify how it is extracted (sf, key, bs, tr, req) or displayed (name).
// Two identifiers with the same name but differently-ordered parameters are
// still the same component — see Equal and Hash in identifier.go.
type ComponentIdentifier struct {
	Name       string
	Type       ComponentType
	Parameters []Parameter
}

// IsDerived reports whether c is a derived component ("@method", "@path", ...).
func (c ComponentIdentifier) IsDerived() bool {
	return c.Type == ComponentDerived
}

// IsField reports whether c is a plain HTTP field component.
func (c ComponentIdentifier) IsField() bool {
	return c.Type == ComponentField
}

// SignatureParams holds the metadata parameters attached to a signature's
// covered-components list (RFC 9421 Section 2.3): created, expires, nonce,
// alg, keyid, tag. All six are optional at the wire-format level; a nil
// field simply means the parameter was absent. Applications that need to
// require any of them do so via parser.SignatureParamsValidationOptions,
// not by any constraint enforced here.
type SignatureParams struct {
	Created   *int64
	Expires   *int64
	Nonce     *string
	Algorithm *string
	KeyID     *string
	Tag       *string
}

// Parameter is one component parameter, e.g. `;key="member"` or `;sf`.
type Parameter struct {
	Key   string
	Value BareItem
}

// BareItem is an RFC 8941 bare item value narrowed to the variants that can
// appear as a component or signature parameter's value.
type BareItem interface {
	isBareItem()
}

// Boolean is a bare boolean item (?0 or ?1).
type Boolean struct{ Value bool }

func (Boolean) isBareItem() {}

// Integer is a bare integer item.
type Integer struct{ Value int64 }

func (Integer) isBareItem() {}

// String is a bare quoted-string item.
type String struct{ Value string }

func (String) isBareItem() {}

// Token is a bare unquoted-identifier item, distinct from String so that a
// parse->serialize round trip never conflates the two.
type Token struct{ Value string }

func (Token) isBareItem() {}

// ByteSequence is a bare byte-sequence item (:base64:).
type ByteSequence struct{ Value []byte }

func (ByteSequence) isBareItem() {}
