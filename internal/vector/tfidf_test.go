package vector

import (
	"math"
	"testing"
)

func TestFitDegenerate(t *testing.T) {
	tests := []struct {
		name string
		docs []string
	}{
		{"empty corpus", nil},
		{"single document", []string{"apple"}},
		{"no extractable grams", []string{"", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s := Fit(tt.docs, 2, 5); s != nil {
				t.Errorf("Fit(%v) should be nil for a degenerate corpus", tt.docs)
			}
		})
	}
}

func TestSimilaritySelf(t *testing.T) {
	s := Fit([]string{"apple", "microsoft", "alphabet"}, 2, 5)
	if s == nil {
		t.Fatal("Fit returned nil for a valid corpus")
	}

	for _, doc := range []string{"apple", "microsoft", "alphabet"} {
		got := s.Similarity(doc, doc)
		if math.Abs(got-1.0) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %f, want 1.0", doc, doc, got)
		}
	}
}

func TestSimilarityOrdering(t *testing.T) {
	s := Fit([]string{"apple", "microsoft", "alphabet", "amazoncom"}, 2, 5)
	if s == nil {
		t.Fatal("Fit returned nil for a valid corpus")
	}

	near := s.Similarity("appl", "apple")
	far := s.Similarity("appl", "microsoft")

	if near <= far {
		t.Errorf("expected appl~apple (%f) > appl~microsoft (%f)", near, far)
	}
	if near <= 0 {
		t.Errorf("appl~apple similarity should be positive, got %f", near)
	}
}

func TestTransformUnknownGrams(t *testing.T) {
	s := Fit([]string{"apple", "microsoft"}, 2, 5)
	if s == nil {
		t.Fatal("Fit returned nil for a valid corpus")
	}

	// Nothing in common with the fitted vocabulary.
	vec := s.Transform("zzzzzz")
	for idx, w := range vec {
		if w != 0 {
			t.Errorf("unexpected weight %f at index %d for out-of-vocabulary text", w, idx)
		}
	}
	if got := Dot(vec, s.Transform("apple")); got != 0 {
		t.Errorf("Dot with out-of-vocabulary vector = %f, want 0", got)
	}
}

func TestNgramCountsShortWord(t *testing.T) {
	counts := ngramCounts("ab", 2, 5)

	// Padded form is " ab " (length 4): full grams for sizes 2 and 3, then
	// the whole padded word once for size 4.
	if counts[" ab "] != 1 {
		t.Errorf("short word should contribute its padded form once, got %d", counts[" ab "])
	}
	if counts[" a"] != 1 || counts["ab"] != 1 || counts["b "] != 1 {
		t.Errorf("unexpected bigram counts: %v", counts)
	}
}
