package utils

import "testing"

func TestMatchesPattern(t *testing.T) {
	testCases := []struct {
		word        string
		pattern     string
		want        bool
		description string
	}{
		{"cave", "c??e", true, "Fixed ends, wildcard middle"},
		{"code", "c??e", true, "Alternative middle letters"},
		{"cart", "c??e", false, "Last letter differs"},
		{"cave", "????", true, "All wildcards"},
		{"cave", "cave", true, "Fully fixed match"},
		{"cave", "c?v", false, "Length mismatch"},
		{"", "", true, "Empty word and pattern"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := MatchesPattern(tc.word, tc.pattern); got != tc.want {
				t.Errorf("MatchesPattern(%q, %q) = %v, want %v", tc.word, tc.pattern, got, tc.want)
			}
		})
	}
}

func TestFixedPrefix(t *testing.T) {
	testCases := []struct {
		pattern string
		want    string
	}{
		{"c??e", "c"},
		{"????", ""},
		{"cave", "cave"},
		{"ca?e", "ca"},
	}

	for _, tc := range testCases {
		if got := FixedPrefix(tc.pattern); got != tc.want {
			t.Errorf("FixedPrefix(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestNormalizeWord(t *testing.T) {
	if got := NormalizeWord("  CaVe \n"); got != "cave" {
		t.Errorf("expected 'cave', got %q", got)
	}
}

func TestIsLowerAlpha(t *testing.T) {
	if !IsLowerAlpha("abalone") {
		t.Error("expected 'abalone' to be valid")
	}
	if IsLowerAlpha("ab1") || IsLowerAlpha("") || IsLowerAlpha("Abc") {
		t.Error("digits, empty and uppercase strings should be rejected")
	}
}
