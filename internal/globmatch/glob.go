// Package globmatch implements single-path-component globbing: `*`
// matches zero or more characters, `?` matches one, matching is
// case-insensitive, and a separator is never crossed.
//
// Matching itself is delegated to doublestar, which already implements
// `*`/`?`/`[...]` glob semantics correctly; `**`-style multi-component
// matching that doublestar additionally offers is never invoked here —
// callers only ever hand it a bare basename, so `**` can't appear.
package globmatch

import "github.com/bmatcuk/doublestar/v4"

// Matches reports whether name (a single path component) matches
// pattern, case-insensitively.
func Matches(name, pattern string) bool {
	ok, err := doublestar.Match(lowerASCII(pattern), lowerASCII(name))
	if err != nil {
		return false
	}
	return ok
}

// MatchesAny reports whether name matches any of patterns.
func MatchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if Matches(name, p) {
			return true
		}
	}
	return false
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
