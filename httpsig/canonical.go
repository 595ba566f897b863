package httpsig

import (
	"net/http"
	"strings"
)

// Pseudo-header names per draft-cavage-http-signatures Section 2.3. They
// are matched verbatim in the headers list; any other entry is treated as
// a header field name.
const (
	HeaderRequestTarget = "(request-target)"
	HeaderCreated       = "(created)"
	HeaderExpires       = "(expires)"
	HeaderDate          = "date"
)

// signingContext supplies the values the signing string is built from:
// the computed request target, the resolved created, expires and date
// strings, a pending digest value, and the request itself for header
// lookups.
type signingContext struct {
	target  string
	created string
	expires string
	date    string
	digest  string
	r       *http.Request
}

// buildSigningString produces one "name: value" line per entry of names,
// newline-joined with no trailing newline, per draft-cavage Section 2.3.
func buildSigningString(names []string, ctx *signingContext) string {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+": "+ctx.value(name))
	}

	return strings.Join(lines, "\n")
}

// value resolves a single signing-string line. Pseudo-header names are
// matched exactly; anything else falls through to a case-insensitive
// header lookup. An unknown name yields an empty value after the colon,
// never an error.
func (c *signingContext) value(name string) string {
	switch name {
	case HeaderRequestTarget:
		return c.target
	case HeaderCreated:
		return c.created
	case HeaderExpires:
		return c.expires
	case HeaderDate:
		return c.date
	}

	return c.headerValue(name)
}

// headerValue looks up a header field, joining multiple values with ","
// and no space. The "host" header is special-cased because net/http
// stores it in Request.Host rather than in the header map. Date and
// digest lookups prefer the values about to be written so the signing
// string stays consistent with the final headers.
func (c *signingContext) headerValue(name string) string {
	switch {
	case strings.EqualFold(name, "host") && c.r.Host != "":
		return c.r.Host
	case strings.EqualFold(name, "date") && c.date != "":
		return c.date
	case strings.EqualFold(name, "digest") && c.digest != "":
		return c.digest
	}

	return strings.Join(c.r.Header.Values(name), ",")
}

// requestTarget computes the (request-target) value: the lowercased
// method, a space, and the path with its query appended when non-empty.
func requestTarget(r *http.Request) string {
	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	target := strings.ToLower(r.Method) + " " + path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	return target
}

// defaultHeaders returns the header list used when none is configured:
// (created) for hs2019, date for the named legacy algorithms.
func defaultHeaders(alg Algorithm) []string {
	if alg == AlgorithmHS2019 {
		return []string{HeaderCreated}
	}

	return []string{HeaderDate}
}
