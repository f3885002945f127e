// Package urlnorm canonicalizes image URLs found on supplier pages.
package urlnorm

import "strings"

// Normalize turns a possibly protocol-relative or bare URL into an
// absolute https URL and strips query string and fragment. The empty
// string maps to itself. Normalize is pure and idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var u string
	switch {
	case strings.HasPrefix(raw, "//"):
		u = "https:" + raw
	case strings.HasPrefix(raw, "http"):
		u = raw
	default:
		// Best effort for bare hosts/paths; no base-URL resolution.
		u = "https://" + raw
	}

	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return u
}

// NormalizeAll maps Normalize over urls, preserving order. Empty
// entries are dropped.
func NormalizeAll(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		if n := Normalize(raw); n != "" {
			out = append(out, n)
		}
	}
	return out
}
