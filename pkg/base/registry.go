package base

import (
	"net/http"

	"github.com/go-httpsig/rfc9421/pkg/sfv"
)

// builtinStructuredFieldTypes is the fallback used to resolve the 'sf'
// component parameter when a Context does not declare an explicit type for
// a field name. It covers the HTTP fields registered as RFC 8941 structured
// fields in the IANA HTTP Structured Fields registry as of RFC 9421's
// publication.
var builtinStructuredFieldTypes = map[string]sfv.TopLevelType{
	http.CanonicalHeaderKey("accept-ch"):                   sfv.TypeList,
	http.CanonicalHeaderKey("cache-status"):                sfv.TypeList,
	http.CanonicalHeaderKey("cdn-cache-control"):           sfv.TypeDictionary,
	http.CanonicalHeaderKey("client-cert"):                 sfv.TypeItem,
	http.CanonicalHeaderKey("client-cert-chain"):           sfv.TypeList,
	http.CanonicalHeaderKey("content-digest"):              sfv.TypeDictionary,
	http.CanonicalHeaderKey("cross-origin-embedder-policy"): sfv.TypeItem,
	http.CanonicalHeaderKey("cross-origin-opener-policy"):  sfv.TypeItem,
	http.CanonicalHeaderKey("cross-origin-resource-policy"): sfv.TypeItem,
	http.CanonicalHeaderKey("origin-agent-cluster"):        sfv.TypeItem,
	http.CanonicalHeaderKey("priority"):                    sfv.TypeDictionary,
	http.CanonicalHeaderKey("proxy-status"):                sfv.TypeList,
	http.CanonicalHeaderKey("repr-digest"):                 sfv.TypeDictionary,
	http.CanonicalHeaderKey("signature"):                   sfv.TypeDictionary,
	http.CanonicalHeaderKey("signature-input"):             sfv.TypeDictionary,
	http.CanonicalHeaderKey("want-content-digest"):         sfv.TypeDictionary,
	http.CanonicalHeaderKey("want-repr-digest"):            sfv.TypeDictionary,
}
