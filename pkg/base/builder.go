package base

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-httpsig/rfc9421/pkg/sfv"
)

// Context is the message-context value bundle a signature base is built
// from: a request-method string, a target URI, an optional caller-supplied
// request-target override, an optional response status, header/trailer
// field pools for the message itself, an optional related request (consulted
// when a covered component carries the 'req' parameter), and a caller
// extensible mapping from field name to its RFC 8941 top-level shape (used
// to resolve the 'sf' component parameter).
//
// A Context is built with WrapRequest/WrapResponse for the common case of
// signing or verifying against *http.Request/*http.Response, or assembled
// field by field with the With* methods for messages that never pass
// through net/http (proxies, log replay, non-HTTP transports carrying HTTP
// semantics).
type Context struct {
	isRequest  bool
	isResponse bool

	method string

	targetURI *url.URL

	requestTarget    string
	hasRequestTarget bool

	statusCode    int
	hasStatusCode bool

	header  http.Header
	trailer http.Header

	relatedRequest *Context

	fieldTypes map[string]sfv.TopLevelType
}

// NewRequestContext returns an empty request-side Context ready for With* calls.
func NewRequestContext() *Context {
	return &Context{isRequest: true, header: http.Header{}, trailer: http.Header{}}
}

// NewResponseContext returns an empty response-side Context ready for With* calls.
func NewResponseContext() *Context {
	return &Context{isResponse: true, header: http.Header{}, trailer: http.Header{}}
}

// WithMethod sets the request method. Only meaningful on a request Context.
func (c *Context) WithMethod(method string) *Context {
	c.method = method
	return c
}

// WithTargetURI sets the target URI used to derive @target-uri, @authority,
// @scheme, @path, @query and @query-param.
func (c *Context) WithTargetURI(u *url.URL) *Context {
	c.targetURI = u
	return c
}

// WithRequestTarget records the caller-supplied @request-target value.
// RFC 9421 defines @request-target as the literal request-line target, which
// this package never derives from the target URI on the caller's behalf
// unless the caller opts into that convenience via WrapRequest.
func (c *Context) WithRequestTarget(target string) *Context {
	c.requestTarget = target
	c.hasRequestTarget = true
	return c
}

// WithStatusCode sets the response status code used to derive @status.
func (c *Context) WithStatusCode(code int) *Context {
	c.statusCode = code
	c.hasStatusCode = true
	return c
}

// WithHeader sets the header field pool.
func (c *Context) WithHeader(h http.Header) *Context {
	c.header = h
	return c
}

// WithTrailer sets the trailer field pool.
func (c *Context) WithTrailer(h http.Header) *Context {
	c.trailer = h
	return c
}

// WithRelatedRequest attaches the request a response is correlated with, for
// resolving covered components that carry the 'req' parameter.
func (c *Context) WithRelatedRequest(req *Context) *Context {
	c.relatedRequest = req
	return c
}

// WithFieldType declares the RFC 8941 top-level shape of an HTTP field for
// 'sf' resolution, overriding the built-in registry for that name. Name is
// matched case-insensitively.
func (c *Context) WithFieldType(name string, t sfv.TopLevelType) *Context {
	if c.fieldTypes == nil {
		c.fieldTypes = make(map[string]sfv.TopLevelType)
	}
	c.fieldTypes[http.CanonicalHeaderKey(name)] = t
	return c
}

// IsRequest reports whether this Context represents a request message.
func (c *Context) IsRequest() bool { return c.isRequest }

// IsResponse reports whether this Context represents a response message.
func (c *Context) IsResponse() bool { return c.isResponse }

// Method returns the request method. Returns an error on a response Context.
func (c *Context) Method() (string, error) {
	if !c.isRequest {
		return "", fmt.Errorf("Method() called on a non-request message")
	}
	return c.method, nil
}

// URL returns the target URI. Returns an error on a response Context or when
// no target URI was set.
func (c *Context) URL() (*url.URL, error) {
	if !c.isRequest {
		return nil, fmt.Errorf("URL() called on a non-request message")
	}
	if c.targetURI == nil {
		return nil, fmt.Errorf("no target URI set on request context")
	}
	return c.targetURI, nil
}

// RequestTargetValue returns the caller-supplied @request-target value.
func (c *Context) RequestTargetValue() (string, bool) {
	return c.requestTarget, c.hasRequestTarget
}

// StatusCode returns the response status code. Returns an error on a request
// Context.
func (c *Context) StatusCode() (int, error) {
	if !c.isResponse {
		return 0, fmt.Errorf("StatusCode() called on a non-response message")
	}
	if !c.hasStatusCode {
		return 0, fmt.Errorf("no status code set on response context")
	}
	return c.statusCode, nil
}

// HeaderValues returns all values for the named header field, in the order
// they appear. Field name lookup is case-insensitive. Returns an empty slice
// if the field is absent.
func (c *Context) HeaderValues(name string) []string {
	if c.header == nil {
		return nil
	}
	return c.header[http.CanonicalHeaderKey(name)]
}

// TrailerValues returns all values for the named trailer field, in the order
// they appear. Field name lookup is case-insensitive. Returns an empty slice
// if the field is absent.
func (c *Context) TrailerValues(name string) []string {
	if c.trailer == nil {
		return nil
	}
	return c.trailer[http.CanonicalHeaderKey(name)]
}

// RelatedRequest returns the request associated with this response Context,
// or nil if none was attached.
func (c *Context) RelatedRequest() *Context {
	return c.relatedRequest
}

// FieldType resolves the declared RFC 8941 top-level shape for name: the
// per-Context override table takes priority, followed by the built-in IANA
// registry of known structured fields.
func (c *Context) FieldType(name string) (sfv.TopLevelType, bool) {
	canon := http.CanonicalHeaderKey(name)
	if c.fieldTypes != nil {
		if t, ok := c.fieldTypes[canon]; ok {
			return t, true
		}
	}
	if t, ok := builtinStructuredFieldTypes[canon]; ok {
		return t, true
	}
	return sfv.TypeUnknown, false
}
