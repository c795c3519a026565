package engine

import "testing"

func TestMatchesName(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		target   string
		expected bool
	}{
		{"exact match", "iron key", "iron key", true},
		{"case insensitive", "Iron Key", "iron key", true},
		{"search is substring of name", "key", "iron key", true},
		{"name is substring of search", "the iron key please", "iron key", true},
		{"word prefix match", "ir ke", "iron key", true},
		{"single word prefix", "lant", "brass lantern", true},
		{"prefix words out of order", "key iron", "iron key", true},
		{"unrelated word fails", "brass key", "iron key", false},
		{"no match", "sword", "iron key", false},
		{"empty search", "", "iron key", false},
		{"empty name", "key", "", false},
		{"whitespace only search", "   ", "iron key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesName(tt.search, tt.target); got != tt.expected {
				t.Errorf("MatchesName(%q, %q) = %v, want %v", tt.search, tt.target, got, tt.expected)
			}
		})
	}
}
