package base

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-httpsig/rfc9421/pkg/parser"
	"github.com/go-httpsig/rfc9421/pkg/sfv"
)

// normalizeLineFolding replaces obsolete line folding with single space.
// RFC 9421 Section 2.1: obs-fold is CRLF or LF followed by one or more whitespace characters.
// This function replaces each sequence of (CRLF|LF) + whitespace with a single space.
//
// Returns an error if bare CR, LF, or CRLF characters are found that are not part of obs-fold.
// Per RFC 7230 Section 3.2, properly formed HTTP header values must not contain bare newlines.
// Bare newlines in header values could allow signature base injection attacks.
func normalizeLineFolding(s string) (string, error) {
	// Fast path: no folding characters present (99% of cases)
	if !strings.ContainsAny(s, "\r\n") {
		return s, nil
	}

	// Slow path: build normalized string
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		// Check for CRLF or LF followed by whitespace
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			// Found CRLF
			if i+2 < len(s) && (s[i+2] == ' ' || s[i+2] == '\t') {
				// CRLF followed by whitespace - this is obs-fold
				// Skip CRLF and all following whitespace, replace with single space
				i += 2 // Skip \r\n
				for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
					i++
				}
				result.WriteByte(' ')
			} else {
				// CRLF not followed by whitespace - reject as invalid
				return "", fmt.Errorf("invalid header value: bare CRLF not part of obs-fold")
			}
		} else if s[i] == '\r' {
			// Bare CR without LF - reject as invalid
			return "", fmt.Errorf("invalid header value: bare CR not part of obs-fold")
		} else if s[i] == '\n' {
			// Found LF (without CR)
			if i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\t') {
				// LF followed by whitespace - this is obs-fold
				// Skip LF and all following whitespace, replace with single space
				i++ // Skip \n
				for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
					i++
				}
				result.WriteByte(' ')
			} else {
				// LF not followed by whitespace - reject as invalid
				return "", fmt.Errorf("invalid header value: bare LF not part of obs-fold")
			}
		} else {
			// Regular character
			result.WriteByte(s[i])
			i++
		}
	}

	return result.String(), nil
}

// extractComponentValue extracts the canonicalized value for a component identifier.
//
// RFC 9421 Section 2: Component values are extracted differently based on type:
// - HTTP fields (Section 2.1): Extracted from headers/trailers with comma-join for multiple values
// - Derived components (Section 2.2): Computed from HTTP message metadata (@method, @path, etc.)
//
// RFC 9421 Section 2.4: The 'req' parameter allows accessing request components from a response signature.
//
// Returns an error if:
// - A derived component's value is not available (e.g. a @query-param name absent from the query)
// - A 'key' lookup is requested on a missing field (a missing field without 'key' yields an empty value)
// - The component type is unknown or unsupported
// - A derived component is not valid for the message type (e.g., @status on request)
// - The 'req' parameter is used but no related request is available
func extractComponentValue(ctx *Context, comp parser.ComponentIdentifier) (string, error) {
	// Check for 'req' parameter - allows accessing request components from response signature
	hasReqParam := false
	for _, param := range comp.Parameters {
		if param.Key == "req" {
			if boolVal, ok := param.Value.(parser.Boolean); ok && boolVal.Value {
				hasReqParam = true
				break
			}
		}
	}

	// If 'req' parameter is present, extract from related request instead
	if hasReqParam {
		if !ctx.IsResponse() {
			return "", fmt.Errorf("'req' parameter is only valid for response signatures")
		}

		relatedReq := ctx.RelatedRequest()
		if relatedReq == nil {
			return "", fmt.Errorf("'req' parameter specified but no related request available")
		}

		// Remove 'req' parameter before extracting from request
		compForReq := parser.ComponentIdentifier{
			Name:       comp.Name,
			Type:       comp.Type,
			Parameters: make([]parser.Parameter, 0, len(comp.Parameters)-1),
		}
		for _, param := range comp.Parameters {
			if param.Key != "req" {
				compForReq.Parameters = append(compForReq.Parameters, param)
			}
		}

		return extractComponentValue(relatedReq, compForReq)
	}

	switch comp.Type {
	case parser.ComponentField:
		return extractHTTPFieldValue(ctx, comp)
	case parser.ComponentDerived:
		return extractDerivedComponentValue(ctx, comp)
	default:
		return "", fmt.Errorf("unknown component type: %v", comp.Type)
	}
}

// extractHTTPFieldValue extracts HTTP field values per RFC 9421 Section 2.1.
//
// RFC 9421 Section 2.1 Canonicalization Algorithm:
// 1. Create ordered list of field values in the order they occur
// 2. Strip leading and trailing whitespace from each value
// 3. Remove obsolete line folding (replace with single space)
// 4. Concatenate values with ", " (comma + space)
//
// Component Parameters (RFC 9421 Section 2.1):
//   - tr: Extract from trailers instead of headers
//   - sf: Serialize as RFC 8941 Structured Field (FR-011)
//   - bs: Encode as base64 byte sequence wrapped in :value: (FR-012)
//   - key: Extract specific dictionary member (FR-013)
func extractHTTPFieldValue(ctx *Context, comp parser.ComponentIdentifier) (string, error) {
	params := parseHTTPFieldParams(comp.Parameters)

	// RFC 9421 Section 2.1.1: Validate parameter combinations (FR-017, FR-018)
	if params.useSF && params.useBS {
		return "", fmt.Errorf("component %q: 'sf' and 'bs' parameters are mutually exclusive (RFC 9421 Section 2.1.1)", comp.Name)
	}

	// Step 1: Extract field values in order
	var values []string
	if params.isTrailer {
		values = ctx.TrailerValues(comp.Name)
	} else {
		values = ctx.HeaderValues(comp.Name)
	}

	// A missing field pool or field name yields an absent value, which the
	// caller renders as an empty base-line value — unless 'key' is set, in
	// which case there is nothing to look the member up in and that is a
	// base-construction error.
	if len(values) == 0 {
		if params.keyName != "" {
			fieldType := "header"
			if params.isTrailer {
				fieldType = "trailer"
			}
			return "", fmt.Errorf("component %q: %s field not found for 'key' lookup", comp.Name, fieldType)
		}
		return "", nil
	}

	rawValue, err := canonicalizeFieldValues(values, comp.Name)
	if err != nil {
		return "", err
	}

	// Step 5: Apply parameter-specific processing

	// SF Parameter: Serialize as RFC 8941 Structured Field (FR-011)
	// This must be processed BEFORE the 'key' parameter if both are present
	if params.useSF {
		return serializeStructuredFieldValue(ctx, rawValue, comp.Name, params.keyName)
	}

	// key without sf: extract a dictionary member directly from the raw
	// header value, without re-serializing the whole field.
	if params.keyName != "" {
		return extractDictionaryMember(rawValue, comp.Name, params.keyName)
	}

	// BS Parameter: Base64-encode as byte sequence (FR-012)
	// RFC 9421 Section 2.1.3: each field value is canonicalized and wrapped in
	// colons :base64: on its own, then the wrapped values are joined with ", "
	if params.useBS {
		wrapped := make([]string, 0, len(values))
		for _, v := range values {
			canon, err := canonicalizeFieldValues([]string{v}, comp.Name)
			if err != nil {
				return "", err
			}
			wrapped = append(wrapped, ":"+base64.StdEncoding.EncodeToString([]byte(canon))+":")
		}
		return strings.Join(wrapped, ", "), nil
	}

	// Default: Return raw canonicalized value (no special processing)
	return rawValue, nil
}

type httpFieldParams struct {
	isTrailer bool
	useSF     bool
	useBS     bool
	keyName   string
}

func parseHTTPFieldParams(params []parser.Parameter) httpFieldParams {
	result := httpFieldParams{}
	for _, param := range params {
		switch param.Key {
		case "tr":
			if boolVal, ok := param.Value.(parser.Boolean); ok {
				result.isTrailer = boolVal.Value
			}
		case "sf":
			if boolVal, ok := param.Value.(parser.Boolean); ok {
				result.useSF = boolVal.Value
			}
		case "bs":
			if boolVal, ok := param.Value.(parser.Boolean); ok {
				result.useBS = boolVal.Value
			}
		case "key":
			if strVal, ok := param.Value.(parser.String); ok {
				result.keyName = strVal.Value
			}
		}
	}
	return result
}

func canonicalizeFieldValues(values []string, compName string) (string, error) {
	normalizedValues := make([]string, len(values))
	for i, v := range values {
		var err error
		if v, err = normalizeLineFolding(v); err != nil {
			return "", fmt.Errorf("component %q: %w", compName, err)
		}
		normalizedValues[i] = strings.TrimSpace(v)
	}
	return strings.Join(normalizedValues, ", "), nil
}

// resolveFieldTopLevelType determines the declared RFC 8941 shape of compName
// on ctx, consulting the Context's own declarations before the built-in IANA
// registry, per RFC 9421 Section 2.1.1's requirement that 'sf' resolution
// use a known type rather than guessing from the wire bytes.
func resolveFieldTopLevelType(ctx *Context, compName string) (sfv.TopLevelType, error) {
	t, ok := ctx.FieldType(compName)
	if !ok {
		return sfv.TypeUnknown, fmt.Errorf("component %q: no known structured-field type; declare one with Context.WithFieldType", compName)
	}
	return t, nil
}

func serializeStructuredFieldValue(ctx *Context, rawValue, compName, keyName string) (string, error) {
	topType, err := resolveFieldTopLevelType(ctx, compName)
	if err != nil {
		return "", err
	}

	if keyName != "" {
		if topType != sfv.TypeDictionary {
			return "", fmt.Errorf("component %q: 'key' requires a dictionary-typed field, got %s", compName, topType)
		}
		p := sfv.NewParser(rawValue, sfv.DefaultLimits())
		dict, err := p.ParseDictionary()
		if err != nil {
			return "", fmt.Errorf("component %q: failed to parse as structured field dictionary: %w", compName, err)
		}
		memberValue, exists := dict.Values[keyName]
		if !exists {
			return "", fmt.Errorf("component %q: dictionary member %q not found", compName, keyName)
		}
		return serializeStructuredFieldMember(compName, keyName, memberValue)
	}

	serialized, err := sfv.ParseAndReserialize(rawValue, topType, sfv.DefaultLimits())
	if err != nil {
		return "", fmt.Errorf("component %q: %w", compName, err)
	}
	return serialized, nil
}

// extractDictionaryMember resolves the 'key' parameter without the 'sf'
// parameter: RFC 9421 Section 2.1.2 treats a bare 'key' as pulling one
// member out of a dictionary-valued field and re-serializing only that
// member, independent of whether the whole field is re-serialized.
func extractDictionaryMember(rawValue, compName, keyName string) (string, error) {
	p := sfv.NewParser(rawValue, sfv.DefaultLimits())
	dict, err := p.ParseDictionary()
	if err != nil {
		return "", fmt.Errorf("component %q: failed to parse as structured field dictionary: %w", compName, err)
	}
	memberValue, exists := dict.Values[keyName]
	if !exists {
		return "", fmt.Errorf("component %q: dictionary member %q not found", compName, keyName)
	}
	return serializeStructuredFieldMember(compName, keyName, memberValue)
}

func serializeStructuredFieldMember(compName, keyName string, memberValue interface{}) (string, error) {
	switch v := memberValue.(type) {
	case sfv.Item:
		serialized, err := sfv.SerializeItem(v)
		if err != nil {
			return "", fmt.Errorf("component %q: failed to serialize dictionary member %q: %w", compName, keyName, err)
		}
		return serialized, nil
	case sfv.InnerList:
		serialized, err := sfv.SerializeInnerList(v)
		if err != nil {
			return "", fmt.Errorf("component %q: failed to serialize dictionary member %q: %w", compName, keyName, err)
		}
		return serialized, nil
	default:
		return "", fmt.Errorf("component %q: invalid dictionary member type for %q: %T", compName, keyName, memberValue)
	}
}

// getRequestURL validates ctx is a request and returns its URL.
// Returns an error with the component name if ctx is not a request or URL() fails.
func getRequestURL(ctx *Context, compName string) (*url.URL, error) {
	if !ctx.IsRequest() {
		return nil, fmt.Errorf("%s is only valid for requests", compName)
	}
	u, err := ctx.URL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", compName, err)
	}
	return u, nil
}

// isDefaultPort reports whether port is the scheme's default, per RFC 9421
// Section 2.2.3's rule that @authority omits it.
func isDefaultPort(scheme, port string) bool {
	switch scheme {
	case "http":
		return port == "80"
	case "https":
		return port == "443"
	}
	return false
}

// deriveAuthority computes @authority per RFC 9421 Section 2.2.3:
// [userinfo "@"] lowercase-host [":" non-default-port].
func deriveAuthority(u *url.URL) string {
	authority := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" && !isDefaultPort(u.Scheme, port) {
		authority += ":" + port
	}
	if u.User != nil {
		authority = u.User.String() + "@" + authority
	}
	return authority
}

// extractQueryParam resolves @query-param;name=X per RFC 9421 Section 2.2.8:
// split the raw query on '&', split each pair on the first '=', match the
// name against the raw (un-decoded) key text, percent-decode the matched
// value (with '+' treated as a literal space, as HTML form encoding does),
// then re-encode with space rendered as %20 rather than '+'. The last
// occurrence of a repeated name wins.
func extractQueryParam(rawQuery, name string) (string, bool) {
	found := false
	var value string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		raw := ""
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			key = pair[:idx]
			raw = pair[idx+1:]
		}
		if key != name {
			continue
		}
		decoded, err := url.QueryUnescape(raw)
		if err != nil {
			decoded = raw
		}
		value = decoded
		found = true
	}
	if !found {
		return "", false
	}
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20"), true
}

// extractDerivedComponentValue extracts derived components per RFC 9421 Section 2.2.
//
// RFC 9421 Section 2.2: Derived components start with @ and are computed from
// HTTP message metadata rather than being directly present in headers.
//
// Request-only derived components:
// - @method: HTTP method (GET, POST, etc.)
// - @target-uri: Complete request URI
// - @authority: Host and port from request URI
// - @scheme: URI scheme (http, https)
// - @request-target: caller-supplied request-target
// - @path: Path component only
// - @query: Query string with leading ?
// - @query-param: Single query parameter value (requires name parameter)
//
// Response-only derived components:
// - @status: HTTP status code (200, 404, etc.)
//
// Both request and response:
// - None currently defined in RFC 9421
func extractDerivedComponentValue(ctx *Context, comp parser.ComponentIdentifier) (string, error) {
	switch comp.Name {
	case "@method":
		if !ctx.IsRequest() {
			return "", fmt.Errorf("@method is only valid for requests")
		}
		method, err := ctx.Method()
		if err != nil {
			return "", fmt.Errorf("@method: %w", err)
		}
		return method, nil

	case "@target-uri":
		u, err := getRequestURL(ctx, "@target-uri")
		if err != nil {
			return "", err
		}
		return u.String(), nil

	case "@authority":
		u, err := getRequestURL(ctx, "@authority")
		if err != nil {
			return "", err
		}
		return deriveAuthority(u), nil

	case "@scheme":
		u, err := getRequestURL(ctx, "@scheme")
		if err != nil {
			return "", err
		}
		return u.Scheme, nil

	case "@request-target":
		if !ctx.IsRequest() {
			return "", fmt.Errorf("@request-target is only valid for requests")
		}
		target, ok := ctx.RequestTargetValue()
		if !ok {
			return "", fmt.Errorf("@request-target: no caller-supplied value available")
		}
		return target, nil

	case "@path":
		u, err := getRequestURL(ctx, "@path")
		if err != nil {
			return "", err
		}
		path := u.EscapedPath()
		// RFC 9421 Section 2.2.6: an empty path string is normalized as a single slash (/) character
		if path == "" {
			return "/", nil
		}
		return path, nil

	case "@query":
		u, err := getRequestURL(ctx, "@query")
		if err != nil {
			return "", err
		}
		if u.RawQuery == "" {
			return "?", nil
		}
		return "?" + u.RawQuery, nil

	case "@query-param":
		// RFC 9421 Section 2.2.8: Requires 'name' parameter
		var paramName string
		for _, param := range comp.Parameters {
			if param.Key == "name" {
				if strVal, ok := param.Value.(parser.String); ok {
					paramName = strVal.Value
					break
				}
			}
		}
		if paramName == "" {
			return "", fmt.Errorf("@query-param requires 'name' parameter")
		}

		u, err := getRequestURL(ctx, "@query-param")
		if err != nil {
			return "", err
		}
		value, found := extractQueryParam(u.RawQuery, paramName)
		if !found {
			return "", fmt.Errorf("query parameter %q not found", paramName)
		}
		return value, nil

	case "@status":
		if !ctx.IsResponse() {
			return "", fmt.Errorf("@status is only valid for responses")
		}
		statusCode, err := ctx.StatusCode()
		if err != nil {
			return "", fmt.Errorf("@status: %w", err)
		}
		return strconv.Itoa(statusCode), nil

	default:
		return "", fmt.Errorf("unknown derived component: %s", comp.Name)
	}
}
