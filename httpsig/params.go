package httpsig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// signatureScheme is the Authorization scheme carrying signature
// parameters.
const signatureScheme = "Signature"

// signatureParams holds the resolved signature parameters in their wire
// form. Values are kept as strings so that caller overrides and parsed
// headers pass through byte-for-byte; an empty value means the parameter
// is absent.
type signatureParams struct {
	keyID     string
	signature string
	headers   string
	created   string
	expires   string
	algorithm string
}

// String serializes the parameters per draft-cavage Section 4.1 in fixed
// order: keyId, signature, headers, created, expires, algorithm. String
// parameters are quoted, created and expires are bare integers, algorithm
// is a bare token. Empty parameters are dropped together with their
// separating comma.
func (p signatureParams) String() string {
	parts := make([]string, 0, 6)

	if p.keyID != "" {
		parts = append(parts, "keyId="+quote(p.keyID))
	}

	if p.signature != "" {
		parts = append(parts, "signature="+quote(p.signature))
	}

	if p.headers != "" {
		parts = append(parts, "headers="+quote(p.headers))
	}

	if p.created != "" {
		parts = append(parts, "created="+p.created)
	}

	if p.expires != "" {
		parts = append(parts, "expires="+p.expires)
	}

	if p.algorithm != "" {
		parts = append(parts, "algorithm="+p.algorithm)
	}

	return strings.Join(parts, ",")
}

// headerList returns the covered header names: the space-separated
// headers parameter, or the algorithm-dependent default when absent.
func (p signatureParams) headerList() []string {
	if p.headers == "" {
		return defaultHeaders(Algorithm(p.algorithm))
	}

	return strings.Fields(p.headers)
}

// createdTime parses the created parameter. A zero time with nil error
// means the parameter is absent.
func (p signatureParams) createdTime() (time.Time, error) {
	return parseUnixParam("created", p.created)
}

// expiresTime parses the expires parameter. A zero time with nil error
// means the parameter is absent.
func (p signatureParams) expiresTime() (time.Time, error) {
	return parseUnixParam("expires", p.expires)
}

func parseUnixParam(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	ts, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s timestamp", ErrMalformedHeader, name)
	}

	return time.Unix(ts, 0), nil
}

// parseSignatureHeader parses an Authorization header value of the form
//
//	Signature keyId="...",signature="...",headers="...",created=...
//
// The scheme is matched case-insensitively. Parameter values may be
// quoted or bare; unknown parameters are ignored for forward
// compatibility and a repeated parameter keeps its last value. keyId and
// signature are required.
func parseSignatureHeader(value string) (signatureParams, error) {
	var params signatureParams

	scheme, rest, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, signatureScheme) {
		return params, ErrSignatureNotFound
	}

	for _, part := range splitQuoteAware(rest, ',') {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return params, fmt.Errorf("%w: parameter %q has no value", ErrMalformedHeader, part)
		}

		val = unquote(strings.TrimSpace(val))

		switch strings.TrimSpace(key) {
		case "keyId":
			params.keyID = val

		case "signature":
			params.signature = val

		case "headers":
			params.headers = val

		case "created":
			params.created = val

		case "expires":
			params.expires = val

		case "algorithm":
			params.algorithm = val
		}
	}

	if params.keyID == "" {
		return params, fmt.Errorf("%w: missing keyId parameter", ErrMalformedHeader)
	}

	if params.signature == "" {
		return params, fmt.Errorf("%w: missing signature parameter", ErrMalformedHeader)
	}

	return params, nil
}

// splitQuoteAware splits s on delim while respecting "..." quoted regions.
// Backslash-escaped quotes (\") inside quoted strings are handled. Each
// resulting part is trimmed of whitespace and empty parts are skipped.
func splitQuoteAware(s string, delim byte) []string {
	var result []string
	var part strings.Builder
	inQuote := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inQuote {
			if ch == '\\' && i+1 < len(s) {
				part.WriteByte(ch)
				i++
				part.WriteByte(s[i])
				continue
			}

			if ch == '"' {
				inQuote = false
			}

			part.WriteByte(ch)
			continue
		}

		if ch == '"' {
			inQuote = true
			part.WriteByte(ch)
			continue
		}

		if ch == delim {
			p := strings.TrimSpace(part.String())
			if p != "" {
				result = append(result, p)
			}

			part.Reset()
			continue
		}

		part.WriteByte(ch)
	}

	if p := strings.TrimSpace(part.String()); p != "" {
		result = append(result, p)
	}

	return result
}

// quote produces an HTTP quoted-string. Only backslash and double-quote
// are escaped.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' || ch == '"' {
			b.WriteByte('\\')
		}

		b.WriteByte(ch)
	}

	b.WriteByte('"')

	return b.String()
}

// unquote removes surrounding double quotes and unescapes \\ and \".
// Bare values pass through unchanged.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(s[i])

			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}
