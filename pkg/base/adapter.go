// Package base provides signature base construction per RFC 9421.
package base

import (
	"net/http"
)

// WrapRequest adapts a standard *http.Request into a Context.
//
// The @request-target value is taken from req.URL.RequestURI(), the literal
// path+query a client would place on the request line; server-received
// requests that need to preserve the exact bytes off the wire should call
// WithRequestTarget explicitly instead.
//
// Example:
//
//	req, _ := http.NewRequest("POST", "https://example.com/foo", nil)
//	req.Header.Set("Content-Type", "application/json")
//
//	ctx := base.WrapRequest(req)
//	signatureBase, err := base.Build(ctx, components, params)
func WrapRequest(req *http.Request) *Context {
	ctx := NewRequestContext().
		WithMethod(req.Method).
		WithTargetURI(req.URL).
		WithHeader(req.Header)

	if req.URL != nil {
		ctx.WithRequestTarget(req.URL.RequestURI())
	}
	if req.Trailer != nil {
		ctx.WithTrailer(req.Trailer)
	}

	return ctx
}

// WrapResponse adapts a standard *http.Response into a Context.
//
// relatedReq is optional and should be provided when the response signature
// needs to access request components via the 'req' component parameter.
//
// Example:
//
//	resp := &http.Response{
//	    StatusCode: 200,
//	    Header: http.Header{
//	        "Content-Type": []string{"application/json"},
//	    },
//	}
//
//	ctx := base.WrapResponse(resp, originalReq)
//	signatureBase, err := base.Build(ctx, components, params)
func WrapResponse(resp *http.Response, relatedReq *http.Request) *Context {
	ctx := NewResponseContext().
		WithStatusCode(resp.StatusCode).
		WithHeader(resp.Header)

	if resp.Trailer != nil {
		ctx.WithTrailer(resp.Trailer)
	}
	if relatedReq != nil {
		ctx.WithRelatedRequest(WrapRequest(relatedReq))
	}

	return ctx
}
