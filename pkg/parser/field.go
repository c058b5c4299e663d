package parser

import (
	"fmt"
	"strings"

	"github.com/go-httpsig/rfc9421/pkg/sfv"
)

// SignatureInputField is the in-memory form of the Signature-Input HTTP
// field: an insertion-ordered mapping from label to signature metadata.
type SignatureInputField struct {
	Labels []string
	Values map[string]*SignatureMetadata
}

// NewSignatureInputField returns an empty field ready for Set calls.
func NewSignatureInputField() *SignatureInputField {
	return &SignatureInputField{Values: make(map[string]*SignatureMetadata)}
}

// Set assigns metadata to a label, appending the label to the insertion
// order the first time it is seen.
func (f *SignatureInputField) Set(label string, md *SignatureMetadata) {
	if _, exists := f.Values[label]; !exists {
		f.Labels = append(f.Labels, label)
	}
	f.Values[label] = md
}

// ParseSignatureInputField parses a Signature-Input header value: an RFC
// 8941 dictionary whose members must be inner lists of component-name
// strings, with the metadata parameter tail carried on the inner list.
func ParseSignatureInputField(raw string, limits sfv.Limits) (*SignatureInputField, error) {
	p := sfv.NewParser(raw, limits)
	dict, err := p.ParseDictionary()
	if err != nil {
		return nil, fmt.Errorf("parsing Signature-Input: %w", err)
	}

	field := NewSignatureInputField()
	for _, label := range dict.Keys {
		inner, ok := dict.Values[label].(sfv.InnerList)
		if !ok {
			return nil, fmt.Errorf("Signature-Input label %q: value must be an inner list", label)
		}

		md := NewSignatureMetadata()
		for i, item := range inner.Items {
			name, ok := item.Value.(string)
			if !ok {
				return nil, fmt.Errorf("Signature-Input label %q: covered component must be a string, got %T", label, item.Value)
			}

			compType := ComponentField
			if strings.HasPrefix(name, "@") {
				compType = ComponentDerived
			}
			params := make([]Parameter, len(item.Parameters))
			for j, sfvParam := range item.Parameters {
				params[j] = Parameter{Key: sfvParam.Key, Value: convertBareItem(sfvParam.Value)}
			}
			id := ComponentIdentifier{Name: name, Type: compType, Parameters: params}
			if err := md.Add(id); err != nil {
				return nil, fmt.Errorf("Signature-Input label %q, component %d: %w", label, i, err)
			}
		}

		params, err := extractSignatureParams(inner.Parameters)
		if err != nil {
			return nil, fmt.Errorf("Signature-Input label %q: %w", label, err)
		}
		md.Params = params

		field.Set(label, md)
	}

	return field, nil
}

// Serialize renders the field in insertion order, separating members with ", ".
func (f *SignatureInputField) Serialize() string {
	parts := make([]string, len(f.Labels))
	for i, label := range f.Labels {
		parts[i] = label + "=" + f.Values[label].Serialize()
	}
	return strings.Join(parts, ", ")
}

// SignatureField is the in-memory form of the Signature HTTP field: an
// insertion-ordered mapping from label to raw signature bytes.
type SignatureField struct {
	Labels []string
	Values map[string][]byte
}

// NewSignatureField returns an empty field ready for Set calls.
func NewSignatureField() *SignatureField {
	return &SignatureField{Values: make(map[string][]byte)}
}

// Set assigns signature bytes to a label, appending to insertion order the
// first time the label is seen.
func (f *SignatureField) Set(label string, sig []byte) {
	if _, exists := f.Values[label]; !exists {
		f.Labels = append(f.Labels, label)
	}
	f.Values[label] = sig
}

// ParseSignatureField parses a Signature header value: an RFC 8941
// dictionary whose members must all be byte-sequence items.
func ParseSignatureField(raw string, limits sfv.Limits) (*SignatureField, error) {
	p := sfv.NewParser(raw, limits)
	dict, err := p.ParseDictionary()
	if err != nil {
		return nil, fmt.Errorf("parsing Signature: %w", err)
	}

	field := NewSignatureField()
	for _, label := range dict.Keys {
		item, ok := dict.Values[label].(sfv.Item)
		if !ok {
			return nil, fmt.Errorf("Signature label %q: value must be an item", label)
		}
		bytesVal, ok := item.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("Signature label %q: value must be a byte sequence, got %T", label, item.Value)
		}
		field.Set(label, bytesVal)
	}

	return field, nil
}

// Serialize renders the field in insertion order, separating members with ", ".
func (f *SignatureField) Serialize() string {
	parts := make([]string, len(f.Labels))
	for i, label := range f.Labels {
		item := sfv.Item{Value: f.Values[label]}
		s, err := sfv.SerializeItem(item)
		if err != nil {
			// Value is always []byte here, which sfv always serializes; kept
			// defensive so Serialize never needs an error return.
			s = ""
		}
		parts[i] = label + "=" + s
	}
	return strings.Join(parts, ", ")
}
