package parser

import (
	"fmt"

	"github.com/go-httpsig/rfc9421/pkg/sfv"
)

// ParseSignatures parses RFC 9421 Signature-Input and Signature headers.
// Per Contract PS-001: Accepts RFC 8941 Dictionary format for both parameters.
// Per Contract PS-006: Returns descriptive errors, fails fast on validation errors.
// Per Contract PS-008: Thread-safe (stateless function).
//
// The limits parameter controls parser size limits for DoS prevention.
// Use sfv.DefaultLimits() for production, sfv.NoLimits() for trusted input.
//
// Example:
//
//	signatureInput := `sig1=("@method" "@path");alg="rsa-pss-sha512"`
//	signature := `sig1=:base64bytes:`
//	result, err := ParseSignatures(signatureInput, signature, sfv.DefaultLimits())
func ParseSignatures(signatureInput, signature string, limits sfv.Limits) (*ParsedSignatures, error) {
	if signatureInput == "" && signature == "" {
		return nil, fmt.Errorf("both Signature-Input and Signature headers are empty")
	}
	if signatureInput == "" {
		return nil, fmt.Errorf("header Signature-Input is empty")
	}
	if signature == "" {
		return nil, fmt.Errorf("header Signature is empty")
	}

	inputField, err := ParseSignatureInputField(signatureInput, limits)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Signature-Input header: %w", err)
	}

	sigField, err := ParseSignatureField(signature, limits)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Signature header: %w", err)
	}

	// Contract PS-002: every label in signatureInput must have entry in signature, and vice versa.
	for _, label := range inputField.Labels {
		if _, exists := sigField.Values[label]; !exists {
			return nil, fmt.Errorf("Signature-Input label %q has no corresponding Signature entry", label)
		}
	}
	for _, label := range sigField.Labels {
		if _, exists := inputField.Values[label]; !exists {
			return nil, fmt.Errorf("header Signature label %q has no corresponding Signature-Input entry", label)
		}
	}

	result := &ParsedSignatures{
		Signatures: make(map[string]SignatureEntry, len(inputField.Labels)),
	}
	for _, label := range inputField.Labels {
		md := inputField.Values[label]
		result.Signatures[label] = SignatureEntry{
			Label:             label,
			CoveredComponents: md.Components,
			SignatureParams:   md.Params,
			SignatureValue:    sigField.Values[label],
		}
	}

	return result, nil
}

// ParseSignatureInput parses only the Signature-Input header, without
// requiring a matching Signature header. A verifier that wants to inspect
// or cache signature metadata (covered components, algorithm, key ID)
// before it has matched a label against the Signature header uses this
// instead of ParseSignatures. Returned entries have a nil SignatureValue;
// the caller fills it in once the corresponding Signature label is found.
func ParseSignatureInput(raw string, limits sfv.Limits) (*ParsedSignatures, error) {
	if raw == "" {
		return nil, fmt.Errorf("header Signature-Input is empty")
	}

	field, err := ParseSignatureInputField(raw, limits)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Signature-Input header: %w", err)
	}

	result := &ParsedSignatures{
		Signatures: make(map[string]SignatureEntry, len(field.Labels)),
	}
	for _, label := range field.Labels {
		md := field.Values[label]
		result.Signatures[label] = SignatureEntry{
			Label:             label,
			CoveredComponents: md.Components,
			SignatureParams:   md.Params,
		}
	}

	return result, nil
}

// extractSignatureParams extracts signature metadata parameters.
// Returns an error if a known parameter has an incorrect type per RFC 9421 Section 2.3.
// Unknown parameters are ignored to allow for future extensibility.
func extractSignatureParams(params []sfv.Parameter) (SignatureParams, error) {
	sp := SignatureParams{}

	for _, param := range params {
		switch param.Key {
		case "created":
			val, ok := param.Value.(int64)
			if !ok {
				return sp, fmt.Errorf("parameter 'created' must be an integer, got %T", param.Value)
			}
			sp.Created = &val
		case "expires":
			val, ok := param.Value.(int64)
			if !ok {
				return sp, fmt.Errorf("parameter 'expires' must be an integer, got %T", param.Value)
			}
			sp.Expires = &val
		case "nonce":
			val, ok := param.Value.(string)
			if !ok {
				return sp, fmt.Errorf("parameter 'nonce' must be a string, got %T", param.Value)
			}
			sp.Nonce = &val
		case "alg":
			val, ok := param.Value.(string)
			if !ok {
				return sp, fmt.Errorf("parameter 'alg' must be a string, got %T", param.Value)
			}
			sp.Algorithm = &val
		case "keyid":
			val, ok := param.Value.(string)
			if !ok {
				return sp, fmt.Errorf("parameter 'keyid' must be a string, got %T", param.Value)
			}
			sp.KeyID = &val
		case "tag":
			val, ok := param.Value.(string)
			if !ok {
				return sp, fmt.Errorf("parameter 'tag' must be a string, got %T", param.Value)
			}
			sp.Tag = &val
			// Unknown parameters are ignored per RFC 9421 (extensibility)
		}
	}

	// Algorithm is RECOMMENDED per RFC 9421 Section 2.3, but not strictly required
	// The RFC 9421 Appendix B test cases don't include 'alg', so we allow it to be empty
	// Note: Verifiers should reject signatures without 'alg' in production use

	return sp, nil
}

// convertBareItem converts SFV bare item to parser BareItem interface.
func convertBareItem(value interface{}) BareItem {
	switch v := value.(type) {
	case bool:
		return Boolean{Value: v}
	case int64:
		return Integer{Value: v}
	case sfv.Token:
		// Token: unquoted identifier (preserved from parsing)
		return Token{Value: v.Value}
	case string:
		// String: quoted string value
		return String{Value: v}
	case []byte:
		return ByteSequence{Value: v}
	default:
		// Fallback: treat as string representation
		return String{Value: fmt.Sprint(v)}
	}
}
