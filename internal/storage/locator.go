package storage

import (
	"net/url"
	"strings"
)

// ObjectKeyFromLocator extracts the backend object key from a stored
// locator, which may be a full URL or a relative path. Locators carry
// the key percent-escaped exactly once, so the segment is taken from
// the escaped path and decoded exactly once. It is total: for any
// input it returns the decoded trailing path segment, or "" when none
// can be recovered. Callers fall back to the stored display filename
// on "".
func ObjectKeyFromLocator(locator string) string {
	if locator == "" {
		return ""
	}

	u, err := url.Parse(locator)
	if err != nil {
		return ""
	}

	p := u.EscapedPath()
	seg := p
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		seg = p[idx+1:]
	}
	if seg == "" {
		return ""
	}

	decoded, err := url.PathUnescape(seg)
	if err != nil {
		return ""
	}
	return decoded
}
