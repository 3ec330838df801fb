package matcher

import (
	"context"
	"strings"
	"time"

	"github.com/tickermatch/internal/debug"
)

// Fallback is the LLM fallback collaborator. It is consulted only after the
// exact and fuzzy stages both fail, and only when Available reports true.
// Implementations must never panic across this boundary; transport failures
// degrade to a not-found Result.
type Fallback interface {
	Available() bool
	TryFallback(ctx context.Context, name string, candidates []FallbackCandidate) Result
}

// Matcher runs the matching cascade: exact, then fuzzy/vector, then the LLM
// fallback. Stages run strictly in order and exactly one stage wins per
// request; results are never merged across stages.
type Matcher struct {
	cfg      Config
	fallback Fallback
	now      func() time.Time
}

// New creates a Matcher. fallback may be nil, in which case the cascade ends
// at the fuzzy stage.
func New(cfg Config, fallback Fallback) *Matcher {
	return &Matcher{
		cfg:      cfg,
		fallback: fallback,
		now:      time.Now,
	}
}

// Match resolves a free-text company name against a prepared corpus. It is
// the sole entry point of the core: every internal failure, including an
// empty corpus, a blank query, and fallback transport errors, resolves to a
// well-formed Result rather than an error.
func (m *Matcher) Match(ctx context.Context, name string, corpus *Corpus) Result {
	start := m.now()
	finish := func(r Result) Result {
		r.Latency = m.now().Sub(start).Seconds()
		return r
	}

	if corpus.Len() == 0 {
		return finish(notFound(MsgNoData))
	}
	if strings.TrimSpace(name) == "" {
		debug.Printf(m.cfg.Debug, "rejecting blank query before matching")
		return finish(notFound(MsgNotFound))
	}

	if result, ok := findExact(name, corpus); ok {
		debug.Printf(m.cfg.Debug, "exact match for %q -> %q", name, result.MatchedName)
		return finish(result)
	}

	fuzzyResult, pool, ok := m.findFuzzy(name, corpus)
	if ok {
		debug.Printf(m.cfg.Debug, "fuzzy match for %q -> %q (score %.1f)", name, fuzzyResult.MatchedName, fuzzyResult.Score)
		return finish(fuzzyResult)
	}

	if m.fallback != nil && m.fallback.Available() {
		candidates := m.fallbackCandidates(pool, corpus)
		return finish(m.fallback.TryFallback(ctx, name, candidates))
	}

	return finish(fuzzyResult)
}

// fallbackCandidates converts the fuzzy candidate pool into the bounded
// shape the fallback stage consumes. Each pool title contributes its first
// reference row in corpus order.
func (m *Matcher) fallbackCandidates(pool []fuzzyMatch, corpus *Corpus) []FallbackCandidate {
	candidates := make([]FallbackCandidate, 0, len(pool))
	for _, match := range pool {
		rows := corpus.entriesFor(match.NormalizedTitle)
		if len(rows) == 0 {
			continue
		}
		candidates = append(candidates, FallbackCandidate{
			CompanyName: rows[0].Title,
			Ticker:      rows[0].Ticker,
			Score:       match.Score,
		})
	}
	return candidates
}
