package httpsig

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-httpsig/rfc9421/pkg/base"
	"github.com/go-httpsig/rfc9421/pkg/digest"
	"github.com/go-httpsig/rfc9421/pkg/parser"
	"github.com/go-httpsig/rfc9421/pkg/sfv"
	"github.com/go-httpsig/rfc9421/pkg/signing"
)

// KeyResolver resolves a verification key (and optionally an algorithm) for a signature.
type KeyResolver interface {
	ResolveKey(ctx context.Context, label string, params parser.SignatureParams) (key interface{}, algorithm string, err error)
}

// KeyResolverFunc adapts a function to the KeyResolver interface.
type KeyResolverFunc func(ctx context.Context, label string, params parser.SignatureParams) (interface{}, string, error)

// ResolveKey implements KeyResolver.
func (f KeyResolverFunc) ResolveKey(ctx context.Context, label string, params parser.SignatureParams) (interface{}, string, error) {
	return f(ctx, label, params)
}

// VerifyOptions configures signature verification.
type VerifyOptions struct {
	Label              string
	RequiredComponents []parser.ComponentIdentifier
	AllowedAlgorithms  []string
	Key                interface{}
	Algorithm          string
	KeyResolver        KeyResolver
	ParamsValidation   parser.SignatureParamsValidationOptions
	Limits             *sfv.Limits

	// RequireContentDigest, when non-empty, makes VerifyRequest/VerifyResponse
	// check the message body against its Content-Digest header for each named
	// algorithm before checking the signature. The body is buffered and
	// replaced with an equivalent io.ReadCloser.
	RequireContentDigest []string
}

// VerifyResult contains details about a successful verification.
type VerifyResult struct {
	Label         string
	Entry         parser.SignatureEntry
	SignatureBase string
}

// Verifier verifies HTTP message signatures using a configured policy.
type Verifier struct {
	label                string
	requiredComponents   []parser.ComponentIdentifier
	allowedAlgorithms    map[string]struct{}
	key                  interface{}
	algorithm            string
	keyResolver          KeyResolver
	paramsValidation     parser.SignatureParamsValidationOptions
	limits               sfv.Limits
	requireContentDigest []string

	// Cache for Signature-Input parsing
	cachedInputRaw   string
	cachedSignatures map[string]parser.SignatureEntry
}

// NewVerifier creates a Verifier with the provided options.
func NewVerifier(opts VerifyOptions) (*Verifier, error) {
	if opts.KeyResolver != nil && opts.Key != nil {
		return nil, fmt.Errorf("key and key resolver are mutually exclusive")
	}
	if opts.KeyResolver == nil && opts.Key == nil {
		return nil, fmt.Errorf("verification key or key resolver is required")
	}

	label := opts.Label

	limits := sfv.DefaultLimits()
	if opts.Limits != nil {
		limits = *opts.Limits
	}

	allowed := make(map[string]struct{}, len(opts.AllowedAlgorithms))
	for _, alg := range opts.AllowedAlgorithms {
		allowed[alg] = struct{}{}
	}

	return &Verifier{
		label:                label,
		requiredComponents:   opts.RequiredComponents,
		allowedAlgorithms:    allowed,
		key:                  opts.Key,
		algorithm:            opts.Algorithm,
		keyResolver:          opts.KeyResolver,
		paramsValidation:     opts.ParamsValidation,
		limits:               limits,
		requireContentDigest: opts.RequireContentDigest,
	}, nil
}

// checkContentDigest verifies *body against the Content-Digest header in
// header, for every algorithm the verifier was configured to require. It
// drains and replaces the body so the caller can still read it afterward.
func (v *Verifier) checkContentDigest(header *http.Header, body *io.ReadCloser) error {
	if len(v.requireContentDigest) == 0 {
		return nil
	}
	if body == nil || *body == nil {
		return fmt.Errorf("content-digest required but message body is nil")
	}

	raw, err := io.ReadAll(*body)
	if err != nil {
		return fmt.Errorf("failed to read body for content-digest: %w", err)
	}
	(*body).Close()
	*body = io.NopCloser(bytes.NewReader(raw))

	contentDigest := header.Get("Content-Digest")
	if contentDigest == "" {
		return fmt.Errorf("content-digest required but Content-Digest header is absent")
	}

	return digest.VerifyContentDigestBytes(raw, contentDigest, v.requireContentDigest)
}

// VerifyRequest verifies the signature(s) on an HTTP request.
func (v *Verifier) VerifyRequest(req *http.Request) (VerifyResult, error) {
	if req == nil {
		return VerifyResult{}, fmt.Errorf("request is required")
	}
	if err := v.checkContentDigest(&req.Header, &req.Body); err != nil {
		return VerifyResult{}, err
	}
	msg := base.WrapRequest(req)
	return v.verifyMessage(req.Context(), msg, req.Header)
}

// VerifyResponse verifies the signature(s) on an HTTP response.
func (v *Verifier) VerifyResponse(resp *http.Response, relatedReq *http.Request) (VerifyResult, error) {
	if resp == nil {
		return VerifyResult{}, fmt.Errorf("response is required")
	}
	if err := v.checkContentDigest(&resp.Header, &resp.Body); err != nil {
		return VerifyResult{}, err
	}
	msg := base.WrapResponse(resp, relatedReq)
	return v.verifyMessage(context.Background(), msg, resp.Header)
}

func (v *Verifier) verifyMessage(ctx context.Context, msg *base.Context, headers http.Header) (VerifyResult, error) {
	signatureInput := headers.Get("Signature-Input")
	signature := headers.Get("Signature")

	if signatureInput == "" {
		return VerifyResult{}, fmt.Errorf("header Signature-Input is empty")
	}
	if signature == "" {
		return VerifyResult{}, fmt.Errorf("header Signature is empty")
	}

	var signatures map[string]parser.SignatureEntry

	// Check cache for Signature-Input
	if signatureInput != "" && signatureInput == v.cachedInputRaw {
		signatures = v.cachedSignatures
	} else {
		// Cache miss or first call
		parsed, err := parser.ParseSignatureInput(signatureInput, v.limits)
		if err != nil {
			return VerifyResult{}, err
		}
		signatures = parsed.Signatures
		// Update cache
		v.cachedInputRaw = signatureInput
		v.cachedSignatures = signatures
	}

	// Now parse the Signature header as a dictionary to match labels
	sigParser := sfv.NewParser(signature, v.limits)
	sigDict, err := sigParser.ParseDictionary()
	if err != nil {
		return VerifyResult{}, fmt.Errorf("failed to parse Signature header: %w", err)
	}

	label := v.label
	if label == "" {
		if len(signatures) != 1 {
			return VerifyResult{}, fmt.Errorf("signature label is required when multiple signatures are present")
		}
		for k := range signatures {
			label = k
			break
		}
	}

	entry, ok := signatures[label]
	if !ok {
		return VerifyResult{}, fmt.Errorf("signature %q not found in Signature-Input", label)
	}

	// Match signature value from Signature header
	sigValue, ok := sigDict.Values[label]
	if !ok {
		return VerifyResult{}, fmt.Errorf("signature %q not found in Signature header", label)
	}

	sigItem, ok := sigValue.(sfv.Item)
	if !ok {
		return VerifyResult{}, fmt.Errorf("signature value must be an item")
	}

	sigBytes, ok := sigItem.Value.([]byte)
	if !ok {
		return VerifyResult{}, fmt.Errorf("signature value must be a byte sequence, got %T", sigItem.Value)
	}
	entry.SignatureValue = sigBytes

	if err := v.validateRequiredComponents(entry.CoveredComponents); err != nil {
		return VerifyResult{}, err
	}

	if err := parser.ValidateSignatureParams(entry.SignatureParams, v.paramsValidation); err != nil {
		return VerifyResult{}, err
	}

	key, algID, err := v.resolveKeyAndAlgorithm(ctx, label, entry.SignatureParams)
	if err != nil {
		return VerifyResult{}, err
	}

	alg, err := signing.GetAlgorithm(algID)
	if err != nil {
		return VerifyResult{}, err
	}

	sigBase, err := base.Build(msg, entry.CoveredComponents, entry.SignatureParams)
	if err != nil {
		return VerifyResult{}, err
	}

	if err := alg.Verify([]byte(sigBase), entry.SignatureValue, key); err != nil {
		return VerifyResult{}, err
	}

	return VerifyResult{
		Label:         label,
		Entry:         entry,
		SignatureBase: sigBase,
	}, nil
}

func (v *Verifier) resolveKeyAndAlgorithm(ctx context.Context, label string, params parser.SignatureParams) (interface{}, string, error) {
	algID := v.algorithm
	if params.Algorithm != nil {
		if algID != "" && algID != *params.Algorithm {
			return nil, "", fmt.Errorf("algorithm mismatch between options and signature parameters")
		}
		if algID == "" {
			algID = *params.Algorithm
		}
	}

	var key interface{}
	var resolvedAlg string
	var err error
	if v.keyResolver != nil {
		key, resolvedAlg, err = v.keyResolver.ResolveKey(ctx, label, params)
		if err != nil {
			return nil, "", err
		}
	} else {
		key = v.key
	}

	if key == nil {
		return nil, "", fmt.Errorf("verification key is required")
	}

	if resolvedAlg != "" {
		if algID != "" && algID != resolvedAlg {
			return nil, "", fmt.Errorf("algorithm mismatch between resolver and signature parameters")
		}
		algID = resolvedAlg
	}

	if algID == "" {
		return nil, "", fmt.Errorf("algorithm is required for verification")
	}

	if len(v.allowedAlgorithms) > 0 {
		if _, ok := v.allowedAlgorithms[algID]; !ok {
			return nil, "", fmt.Errorf("algorithm %q is not allowed", algID)
		}
	}

	return key, algID, nil
}

func (v *Verifier) validateRequiredComponents(covered []parser.ComponentIdentifier) error {
	present := make(map[string]struct{}, len(covered))
	for _, comp := range covered {
		present[comp.Hash()] = struct{}{}
	}
	for _, required := range v.requiredComponents {
		if _, ok := present[required.Hash()]; !ok {
			return fmt.Errorf("required component %q is missing", required.Name)
		}
	}
	return nil
}
