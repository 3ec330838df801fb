package matcher

import (
	"testing"

	"github.com/adrg/strutil/metrics"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "apple", "apple", 100},
		{"both empty", "", "", 100},
		{"one empty", "apple", "", 0},
		{"single deletion via partial window", "appl", "apple", 90},
		{"equal length substitution", "abcd", "abcf", 75},
		{"token order ignored", "technology acme", "acme technology", 100},
		{"unrelated", "apple", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fuzzyScore(tt.a, tt.b); got != tt.want {
				t.Errorf("fuzzyScore(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFuzzyScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"appl", "apple"},
		{"microsoft", "microsft"},
		{"acme technology", "acme"},
	}
	for _, p := range pairs {
		if ab, ba := fuzzyScore(p[0], p[1]), fuzzyScore(p[1], p[0]); ab != ba {
			t.Errorf("fuzzyScore not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestPartialRatioEqualLengths(t *testing.T) {
	lev := metrics.NewLevenshtein()
	if got := partialRatio("abcd", "abcf", lev); got != 0 {
		t.Errorf("partialRatio on equal lengths = %v, want 0", got)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{85.6789, 85.7},
		{90.04, 90.0},
		{99.95, 100.0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
