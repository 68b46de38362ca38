// Package strings provides small string helpers shared by transports and logs
package strings

import (
	std "strings"
	"unicode/utf8"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Or returns s, or def when s is blank
func Or(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /contact or /meta
// ensures a single leading slash and no trailing slash; panics if nothing is left
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Truncate caps s at max runes without splitting a multi-byte character
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// FirstToken returns the first comma-separated element of s, trimmed
// e.g. the client hop of an X-Forwarded-For chain
func FirstToken(s string) string {
	if i := std.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return std.TrimSpace(s)
}
