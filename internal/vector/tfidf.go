package vector

import (
	"math"
	"strings"
)

// MinDocuments is the smallest corpus a Space can be fitted over. Below this
// the IDF weights carry no information and callers should fall back to plain
// fuzzy scoring.
const MinDocuments = 2

// Space is a character n-gram TF-IDF vector space fitted over a fixed
// document set. N-grams are extracted per word with single-space padding on
// both sides, so a gram never spans a word boundary. Once fitted a Space is
// read-only and safe for concurrent use.
type Space struct {
	minN  int
	maxN  int
	vocab map[string]int
	idf   []float64
}

// Vector is a sparse l2-normalized document vector, keyed by vocabulary index.
type Vector map[int]float64

// Fit builds a Space over docs with n-gram sizes minN..maxN inclusive.
// It returns nil when the corpus is too small or degenerate to produce a
// meaningful similarity space.
func Fit(docs []string, minN, maxN int) *Space {
	if len(docs) < MinDocuments || minN < 1 || maxN < minN {
		return nil
	}

	s := &Space{
		minN:  minN,
		maxN:  maxN,
		vocab: make(map[string]int),
	}

	// Document frequency per gram, in vocabulary order.
	var df []int
	for _, doc := range docs {
		seen := make(map[int]bool)
		for gram := range ngramCounts(doc, minN, maxN) {
			idx, ok := s.vocab[gram]
			if !ok {
				idx = len(df)
				s.vocab[gram] = idx
				df = append(df, 0)
			}
			if !seen[idx] {
				df[idx]++
				seen[idx] = true
			}
		}
	}

	if len(df) == 0 {
		return nil
	}

	// Smoothed IDF: ln((1+n)/(1+df)) + 1.
	n := float64(len(docs))
	s.idf = make([]float64, len(df))
	for i, count := range df {
		s.idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}

	return s
}

// Transform maps text into the fitted space. Grams outside the fitted
// vocabulary are ignored; a text with no known grams yields an empty vector.
func (s *Space) Transform(text string) Vector {
	vec := make(Vector)
	for gram, count := range ngramCounts(text, s.minN, s.maxN) {
		if idx, ok := s.vocab[gram]; ok {
			vec[idx] = float64(count) * s.idf[idx]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}

	return vec
}

// Similarity returns the cosine similarity of two texts in [0, 1].
func (s *Space) Similarity(a, b string) float64 {
	return Dot(s.Transform(a), s.Transform(b))
}

// Dot computes the inner product of two sparse vectors. For l2-normalized
// vectors this is the cosine similarity.
func Dot(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		sum += w * b[idx]
	}
	return sum
}

// ngramCounts extracts padded per-word character n-grams with multiplicity.
// A word shorter than the gram size contributes its whole padded form once.
func ngramCounts(text string, minN, maxN int) map[string]int {
	counts := make(map[string]int)
	for _, word := range strings.Fields(text) {
		padded := " " + word + " "
		for n := minN; n <= maxN; n++ {
			if len(padded) <= n {
				counts[padded]++
				break
			}
			for i := 0; i+n <= len(padded); i++ {
				counts[padded[i:i+n]]++
			}
		}
	}
	return counts
}
