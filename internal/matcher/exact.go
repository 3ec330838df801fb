package matcher

import "strings"

// findExact scans for entries whose raw title equals the query
// case-insensitively. The first hit in corpus order wins outright; a perfect
// textual match is treated as unambiguous even when duplicates exist, so no
// alternates are returned. Normalization is never applied here.
func findExact(query string, c *Corpus) (Result, bool) {
	lowered := strings.ToLower(query)

	for _, entry := range c.Entries {
		if strings.ToLower(entry.Title) != lowered {
			continue
		}

		result := Result{
			MatchedName:        entry.Title,
			PredictedTicker:    entry.Ticker,
			AllPossibleTickers: []string{},
			Score:              100,
			TopMatches: []TopMatch{{
				Rank:        1,
				CompanyName: entry.Title,
				Ticker:      entry.Ticker,
				Score:       100,
			}},
		}
		if entry.Ticker == "" {
			result.Message = MsgNoTicker
		} else {
			result.AllPossibleTickers = []string{entry.Ticker}
		}
		return result, true
	}

	return Result{}, false
}
