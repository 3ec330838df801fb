package matcher

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tickermatch/internal/normalize"
	"github.com/tickermatch/internal/vector"
)

// corpusVersion hands out a fresh version token per prepared corpus, so
// caches keyed on Version never confuse two loads of the reference table.
var corpusVersion uint64

// Corpus is the prepared, matchable reference set: filtered entries with
// precomputed normalized titles, plus a lazily fitted vector space. A Corpus
// is immutable after Prepare and safe for concurrent use; the vector space is
// fitted at most once.
type Corpus struct {
	Version uint64
	Entries []NormalizedEntry

	// titles holds the distinct normalized titles in first-seen order;
	// byTitle maps each back to its entry indexes.
	titles  []string
	byTitle map[string][]int

	fitOnce sync.Once
	space   *vector.Space
	ngMin   int
	ngMax   int
}

// Prepare builds a Corpus from raw reference entries. The pipeline drops
// non-stock instruments when an asset classification is present, drops
// fund/ETF-looking titles, removes exact duplicate rows, drops rows with a
// blank title, and computes the normalized comparison key for the survivors.
// The input slice is never modified. A zero-entry result means "no reference
// data" and callers must surface that, not treat it as a valid empty match.
func Prepare(entries []Entry, cfg Config) *Corpus {
	c := &Corpus{
		Version: atomic.AddUint64(&corpusVersion, 1),
		byTitle: make(map[string][]int),
		ngMin:   cfg.NgramMin,
		ngMax:   cfg.NgramMax,
	}

	seen := make(map[Entry]bool)
	for _, entry := range entries {
		// Absence of a classification is not evidence of exclusion.
		if entry.AssetType != "" && entry.AssetType != "Stock" {
			continue
		}
		if normalize.IsFundLikeKeywords(entry.Title, cfg.FundKeywords) {
			continue
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		if strings.TrimSpace(entry.Title) == "" {
			continue
		}

		normalized := NormalizedEntry{
			Entry:           entry,
			NormalizedTitle: normalize.CompanyWithSuffixes(entry.Title, cfg.Suffixes),
		}
		idx := len(c.Entries)
		c.Entries = append(c.Entries, normalized)

		if _, ok := c.byTitle[normalized.NormalizedTitle]; !ok {
			c.titles = append(c.titles, normalized.NormalizedTitle)
		}
		c.byTitle[normalized.NormalizedTitle] = append(c.byTitle[normalized.NormalizedTitle], idx)
	}

	return c
}

// Len returns the number of matchable entries.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Space returns the vector space fitted over the corpus titles, or nil when
// the corpus is too small or degenerate to vectorize. The fit happens once;
// concurrent callers share the result.
func (c *Corpus) Space() *vector.Space {
	c.fitOnce.Do(func() {
		c.space = vector.Fit(c.titles, c.ngMin, c.ngMax)
	})
	return c.space
}

// entriesFor returns the reference rows sharing a normalized title, in
// corpus order.
func (c *Corpus) entriesFor(normalizedTitle string) []NormalizedEntry {
	idxs := c.byTitle[normalizedTitle]
	rows := make([]NormalizedEntry, 0, len(idxs))
	for _, idx := range idxs {
		rows = append(rows, c.Entries[idx])
	}
	return rows
}
