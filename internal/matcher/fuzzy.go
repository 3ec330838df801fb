package matcher

import (
	"sort"

	"github.com/tickermatch/internal/debug"
	"github.com/tickermatch/internal/normalize"
	"github.com/tickermatch/internal/vector"
)

// fuzzyMatch is one entry of the candidate pool: a distinct normalized title
// with its fuzzy score. The pool is surfaced to the fallback stage even when
// no candidate clears the threshold.
type fuzzyMatch struct {
	NormalizedTitle string
	Score           float64
}

// findFuzzy runs the fuzzy/vector stage. It returns the stage result, the
// unfiltered candidate pool for fallback reuse, and whether the stage
// produced a match.
func (m *Matcher) findFuzzy(query string, c *Corpus) (Result, []fuzzyMatch, bool) {
	nameProcessed := normalize.CompanyWithSuffixes(query, m.cfg.Suffixes)

	pool := m.topFuzzyMatches(nameProcessed, c)

	var strong []fuzzyMatch
	for _, match := range pool {
		if match.Score >= m.cfg.FuzzyThreshold {
			strong = append(strong, match)
		}
	}
	if len(strong) == 0 {
		return notFound(MsgNotFound), pool, false
	}

	candidates := m.scoreCandidates(nameProcessed, strong, c)
	if len(candidates) == 0 {
		return notFound(MsgNotFound), pool, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CombinedScore > candidates[j].CombinedScore
	})

	// A perfect combined score is unambiguous: collapse to the single top
	// candidate and return no alternates.
	if candidates[0].CombinedScore >= 100.0 {
		debug.Printf(m.cfg.Debug, "perfect fuzzy match (score=%.1f), collapsing to single result", candidates[0].CombinedScore)
		candidates = candidates[:1]
	}

	return m.prepareFuzzyResult(candidates), pool, true
}

// topFuzzyMatches scores the query against every distinct normalized title
// and keeps the best MaxCandidates, ties broken by first-seen corpus order.
func (m *Matcher) topFuzzyMatches(nameProcessed string, c *Corpus) []fuzzyMatch {
	pool := make([]fuzzyMatch, 0, len(c.titles))
	for _, title := range c.titles {
		pool = append(pool, fuzzyMatch{
			NormalizedTitle: title,
			Score:           fuzzyScore(nameProcessed, title),
		})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	if len(pool) > m.cfg.MaxCandidates {
		pool = pool[:m.cfg.MaxCandidates]
	}
	return pool
}

// scoreCandidates expands strong matches into per-row candidates and blends
// in vector similarity. When the vector space cannot be fitted the fuzzy
// score stands alone; vectorization being unavailable never fails the stage.
func (m *Matcher) scoreCandidates(nameProcessed string, strong []fuzzyMatch, c *Corpus) []Candidate {
	space := c.Space()

	var candidates []Candidate
	if space == nil {
		debug.Printf(m.cfg.Debug, "vector space unavailable for corpus v%d, using fuzzy scores only", c.Version)
		for _, match := range strong {
			for _, row := range c.entriesFor(match.NormalizedTitle) {
				candidates = append(candidates, Candidate{
					Entry:         row,
					FuzzyScore:    match.Score,
					CombinedScore: match.Score,
				})
			}
		}
		return candidates
	}

	query := space.Transform(nameProcessed)
	for _, match := range strong {
		vectorScore := round1(vector.Dot(query, space.Transform(match.NormalizedTitle)) * 100)
		combined := round1((match.Score + vectorScore) / 2)
		debug.Printf(m.cfg.Debug, "combined score %.1f (fuzzy %.1f, vector %.1f) for %q",
			combined, match.Score, vectorScore, match.NormalizedTitle)

		for _, row := range c.entriesFor(match.NormalizedTitle) {
			candidates = append(candidates, Candidate{
				Entry:         row,
				FuzzyScore:    match.Score,
				VectorScore:   vectorScore,
				CombinedScore: combined,
			})
		}
	}
	return candidates
}

// prepareFuzzyResult builds the outcome from ranked candidates: best row
// wins, tickers are deduplicated in first-seen order with blanks excluded,
// and at most TopMatchLimit ranked matches are surfaced.
func (m *Matcher) prepareFuzzyResult(candidates []Candidate) Result {
	best := candidates[0]

	result := Result{
		MatchedName:        best.Entry.Title,
		PredictedTicker:    best.Entry.Ticker,
		AllPossibleTickers: []string{},
		Score:              best.CombinedScore,
		TopMatches:         []TopMatch{},
	}

	seen := make(map[string]bool)
	for i, candidate := range candidates {
		ticker := candidate.Entry.Ticker
		if ticker != "" && !seen[ticker] {
			seen[ticker] = true
			result.AllPossibleTickers = append(result.AllPossibleTickers, ticker)
		}
		if i < m.cfg.TopMatchLimit {
			result.TopMatches = append(result.TopMatches, TopMatch{
				Rank:        i + 1,
				CompanyName: candidate.Entry.Title,
				Ticker:      ticker,
				Score:       candidate.CombinedScore,
			})
		}
	}

	return result
}
