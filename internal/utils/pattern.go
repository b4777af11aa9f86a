package utils

import "strings"

// Wildcard marks an unknown cell in a slot pattern.
const Wildcard = '?'

// NormalizeWord lowercases a word and trims surrounding whitespace.
// All dictionary and segment text goes through here exactly once at load time.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsLowerAlpha reports whether a string is non-empty and contains only a-z.
func IsLowerAlpha(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// IsPatternChar reports whether a byte is valid inside a slot pattern.
func IsPatternChar(c byte) bool {
	return c == Wildcard || (c >= 'a' && c <= 'z')
}

// HasFixedChars reports whether a pattern constrains at least one position.
func HasFixedChars(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != Wildcard {
			return true
		}
	}
	return false
}

// FixedPrefix returns the run of non-wildcard characters at the start of a pattern.
func FixedPrefix(pattern string) string {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == Wildcard {
			return pattern[:i]
		}
	}
	return pattern
}

// MatchesPattern reports whether a word satisfies a pattern of equal length,
// treating the wildcard as "any single character".
func MatchesPattern(word, pattern string) bool {
	if len(word) != len(pattern) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != Wildcard && pattern[i] != word[i] {
			return false
		}
	}
	return true
}

// ContainsWildcard reports whether any position of s is the wildcard marker.
func ContainsWildcard(s string) bool {
	return strings.IndexByte(s, Wildcard) >= 0
}
