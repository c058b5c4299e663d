package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-httpsig/rfc9421/pkg/sfv"
)

// SignatureMetadata pairs an ordered covered-components list with the
// signature's parameter tail (created, expires, nonce, alg, keyid, tag).
// It is the in-memory counterpart of one inner-list member of the
// Signature-Input dictionary.
//
// A SignatureMetadata is safe to read concurrently once constructed; it
// is not safe to mutate (Add) from more than one goroutine at a time.
type SignatureMetadata struct {
	Components []ComponentIdentifier
	Params     SignatureParams
}

// NewSignatureMetadata returns an empty metadata value ready for Add calls.
func NewSignatureMetadata() *SignatureMetadata {
	return &SignatureMetadata{}
}

// Add appends a component identifier to the covered-components list. It
// fails if an equal identifier (per ComponentIdentifier.Equal) is already
// present, and if the identifier fails registry/parameter validation.
func (m *SignatureMetadata) Add(id ComponentIdentifier) error {
	if err := validateComponentIdentifier(id); err != nil {
		return err
	}
	for _, existing := range m.Components {
		if existing.Equal(id) {
			return fmt.Errorf("duplicate covered component %q", id.Name)
		}
	}
	m.Components = append(m.Components, id)
	return nil
}

// Len returns the number of covered components.
func (m *SignatureMetadata) Len() int {
	return len(m.Components)
}

// Created returns the created parameter as a time.Time and whether it was present.
func (m *SignatureMetadata) Created() (time.Time, bool) {
	if m.Params.Created == nil {
		return time.Time{}, false
	}
	return time.Unix(*m.Params.Created, 0).UTC(), true
}

// SetCreated sets the created parameter from a timestamp, truncated to whole seconds.
func (m *SignatureMetadata) SetCreated(t time.Time) {
	v := t.Unix()
	m.Params.Created = &v
}

// Expires returns the expires parameter as a time.Time and whether it was present.
func (m *SignatureMetadata) Expires() (time.Time, bool) {
	if m.Params.Expires == nil {
		return time.Time{}, false
	}
	return time.Unix(*m.Params.Expires, 0).UTC(), true
}

// SetExpires sets the expires parameter from a timestamp, truncated to whole seconds.
func (m *SignatureMetadata) SetExpires(t time.Time) {
	v := t.Unix()
	m.Params.Expires = &v
}

// Serialize renders "(id1 id2 ...)" followed by the parameter tail, in the
// canonical order defined by RFC 9421 Section 2.3: created, expires,
// nonce, alg, keyid, tag.
func (m *SignatureMetadata) Serialize() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, comp := range m.Components {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(comp.Serialize())
	}
	sb.WriteByte(')')

	if m.Params.Created != nil {
		sb.WriteString(";created=")
		sb.WriteString(strconv.FormatInt(*m.Params.Created, 10))
	}
	if m.Params.Expires != nil {
		sb.WriteString(";expires=")
		sb.WriteString(strconv.FormatInt(*m.Params.Expires, 10))
	}
	if m.Params.Nonce != nil {
		sb.WriteString(";nonce=")
		sb.WriteString(sfv.SerializeString(*m.Params.Nonce))
	}
	if m.Params.Algorithm != nil {
		sb.WriteString(";alg=")
		sb.WriteString(sfv.SerializeString(*m.Params.Algorithm))
	}
	if m.Params.KeyID != nil {
		sb.WriteString(";keyid=")
		sb.WriteString(sfv.SerializeString(*m.Params.KeyID))
	}
	if m.Params.Tag != nil {
		sb.WriteString(";tag=")
		sb.WriteString(sfv.SerializeString(*m.Params.Tag))
	}

	return sb.String()
}
