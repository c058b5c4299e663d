package httpsig

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-httpsig/rfc9421/pkg/base"
	"github.com/go-httpsig/rfc9421/pkg/digest"
	"github.com/go-httpsig/rfc9421/pkg/parser"
	"github.com/go-httpsig/rfc9421/pkg/signing"
)

// DefaultLabel is the default signature label used by Signer and Verifier.
const DefaultLabel = "sig1"

// SignatureHeaders contains serialized Signature-Input and Signature header values.
type SignatureHeaders struct {
	SignatureInput string
	Signature      string
}

// SignerOptions configures a high-level signature operation.
type SignerOptions struct {
	Label      string
	Components []parser.ComponentIdentifier

	Algorithm string
	Key       interface{}

	KeyID   string
	Nonce   string
	Tag     string
	Created time.Time
	Expires time.Time

	DisableCreated   bool
	DisableAlgorithm bool
	Now              func() time.Time

	// ContentDigestAlgorithms, when non-empty, makes SignRequest/SignResponse
	// compute a Content-Digest header from the message body before building
	// the signature base, so "content-digest" can be listed in Components.
	// The body is buffered and replaced with an equivalent io.ReadCloser.
	ContentDigestAlgorithms []string
}

// Signer signs HTTP messages and attaches Signature-Input and Signature headers.
type Signer struct {
	label                   string
	components              []parser.ComponentIdentifier
	params                  parser.SignatureParams
	alg                     signing.Algorithm
	key                     interface{}
	contentDigestAlgorithms []string
}

// NewSigner creates a Signer with the provided options.
func NewSigner(opts SignerOptions) (*Signer, error) {
	if opts.Algorithm == "" {
		return nil, fmt.Errorf("algorithm is required")
	}
	if opts.Key == nil {
		return nil, fmt.Errorf("signing key is required")
	}

	label := opts.Label
	if label == "" {
		label = DefaultLabel
	}

	alg, err := signing.GetAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	params := parser.SignatureParams{}

	if !opts.DisableCreated {
		created := opts.Created
		if created.IsZero() {
			if opts.Now != nil {
				created = opts.Now()
			} else {
				created = time.Now()
			}
		}
		createdUnix := created.Unix()
		params.Created = &createdUnix
	}

	if !opts.Expires.IsZero() {
		expiresUnix := opts.Expires.Unix()
		params.Expires = &expiresUnix
	}

	if !opts.DisableAlgorithm {
		algID := opts.Algorithm
		params.Algorithm = &algID
	}

	if opts.KeyID != "" {
		keyID := opts.KeyID
		params.KeyID = &keyID
	}
	if opts.Nonce != "" {
		nonce := opts.Nonce
		params.Nonce = &nonce
	}
	if opts.Tag != "" {
		tag := opts.Tag
		params.Tag = &tag
	}

	return &Signer{
		label:                   label,
		components:              opts.Components,
		params:                  params,
		alg:                     alg,
		key:                     opts.Key,
		contentDigestAlgorithms: opts.ContentDigestAlgorithms,
	}, nil
}

// SignRequest signs an HTTP request and sets Signature-Input and Signature headers.
func (s *Signer) SignRequest(req *http.Request) (SignatureHeaders, error) {
	if req == nil {
		return SignatureHeaders{}, fmt.Errorf("request is required")
	}
	if err := s.stampContentDigest(&req.Header, &req.Body); err != nil {
		return SignatureHeaders{}, err
	}
	msg := base.WrapRequest(req)
	headers, err := s.signMessage(msg)
	if err != nil {
		return SignatureHeaders{}, err
	}
	req.Header.Set("Signature-Input", headers.SignatureInput)
	req.Header.Set("Signature", headers.Signature)
	return headers, nil
}

// SignResponse signs an HTTP response and sets Signature-Input and Signature headers.
func (s *Signer) SignResponse(resp *http.Response, relatedReq *http.Request) (SignatureHeaders, error) {
	if resp == nil {
		return SignatureHeaders{}, fmt.Errorf("response is required")
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	if err := s.stampContentDigest(&resp.Header, &resp.Body); err != nil {
		return SignatureHeaders{}, err
	}
	msg := base.WrapResponse(resp, relatedReq)
	headers, err := s.signMessage(msg)
	if err != nil {
		return SignatureHeaders{}, err
	}
	resp.Header.Set("Signature-Input", headers.SignatureInput)
	resp.Header.Set("Signature", headers.Signature)
	return headers, nil
}

// stampContentDigest computes a Content-Digest header from *body and sets it
// on header, when the signer was configured with ContentDigestAlgorithms. The
// body reader is drained and replaced so the caller can still send it.
func (s *Signer) stampContentDigest(header *http.Header, body *io.ReadCloser) error {
	if len(s.contentDigestAlgorithms) == 0 {
		return nil
	}
	if body == nil || *body == nil {
		return fmt.Errorf("content-digest requested but message body is nil")
	}

	raw, err := io.ReadAll(*body)
	if err != nil {
		return fmt.Errorf("failed to read body for content-digest: %w", err)
	}
	(*body).Close()
	*body = io.NopCloser(bytes.NewReader(raw))

	digests := make(map[string][]byte, len(s.contentDigestAlgorithms))
	for _, alg := range s.contentDigestAlgorithms {
		sum, err := digest.ComputeDigest(raw, alg)
		if err != nil {
			return fmt.Errorf("failed to compute content-digest: %w", err)
		}
		digests[alg] = sum
	}

	formatted, err := digest.FormatContentDigest(digests)
	if err != nil {
		return fmt.Errorf("failed to format content-digest: %w", err)
	}
	header.Set("Content-Digest", formatted)
	return nil
}

func (s *Signer) signMessage(msg *base.Context) (SignatureHeaders, error) {
	sigBase, err := base.Build(msg, s.components, s.params)
	if err != nil {
		return SignatureHeaders{}, err
	}

	signature, err := s.alg.Sign([]byte(sigBase), s.key)
	if err != nil {
		return SignatureHeaders{}, err
	}

	sigInput, err := serializeSignatureInput(s.label, s.components, s.params)
	if err != nil {
		return SignatureHeaders{}, err
	}

	sigHeader, err := serializeSignature(s.label, signature)
	if err != nil {
		return SignatureHeaders{}, err
	}

	return SignatureHeaders{
		SignatureInput: sigInput,
		Signature:      sigHeader,
	}, nil
}
