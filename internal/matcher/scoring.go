package matcher

import (
	"math"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// fuzzyScore rates two normalized names on a 0-100 scale. It is the best of
// a normalized Levenshtein ratio, a Sorensen-Dice bigram ratio, a token-sort
// Levenshtein ratio, and (for names of different lengths) a partial ratio of
// the shorter name against every window of the longer one, weighted by 0.9.
func fuzzyScore(a, b string) float64 {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	lev := metrics.NewLevenshtein()
	dice := metrics.NewSorensenDice()

	best := strutil.Similarity(a, b, lev)
	if d := strutil.Similarity(a, b, dice); d > best {
		best = d
	}
	if ts := strutil.Similarity(sortTokens(a), sortTokens(b), lev); ts > best {
		best = ts
	}
	if p := 0.9 * partialRatio(a, b, lev); p > best {
		best = p
	}

	return round1(best * 100)
}

// partialRatio slides the shorter string across the longer one and keeps the
// best window similarity. Equal-length inputs score 0 here; the full ratio
// already covers them.
func partialRatio(a, b string, lev *metrics.Levenshtein) float64 {
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == len(long) || len(short) == 0 {
		return 0
	}

	var best float64
	for i := 0; i+len(short) <= len(long); i++ {
		if sim := strutil.Similarity(short, long[i:i+len(short)], lev); sim > best {
			best = sim
			if best == 1 {
				break
			}
		}
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
