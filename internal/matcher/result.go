package matcher

// Messages returned on the failure paths of the matching cascade. The exact
// wording is part of the API contract and is matched on by callers.
const (
	MsgNotFound    = "Company is not in public company list"
	MsgNoData      = "No ticker data available"
	MsgNoTicker    = "No ticker found for company"
	MsgOpenAIError = "OpenAI service error"
)

// Entry is one row of the reference table. An empty Ticker means the source
// listed a title without a resolvable symbol; that is valid input. AssetType
// is only populated when the source carries an instrument classification.
type Entry struct {
	Ticker    string `json:"ticker"`
	Title     string `json:"title"`
	AssetType string `json:"asset_type,omitempty"`
}

// NormalizedEntry is an Entry plus its precomputed comparison key.
type NormalizedEntry struct {
	Entry
	NormalizedTitle string
}

// TopMatch is one ranked candidate surfaced to callers. Ticker is empty when
// the underlying reference row has no symbol.
type TopMatch struct {
	Rank        int     `json:"rank"`
	CompanyName string  `json:"company_name"`
	Ticker      string  `json:"ticker,omitempty"`
	Score       float64 `json:"score"`
}

// Candidate is an intermediate fuzzy-stage candidate: one reference row with
// its fuzzy, vector and combined scores on the 0-100 scale.
type Candidate struct {
	Entry         NormalizedEntry
	FuzzyScore    float64
	VectorScore   float64
	CombinedScore float64
}

// FallbackCandidate is the bounded shape handed to the LLM fallback stage:
// a raw company title, its ticker (possibly empty) and its prior fuzzy score.
type FallbackCandidate struct {
	CompanyName string
	Ticker      string
	Score       float64
}

// Result is the outcome every stage produces and callers consume. Message is
// set only on failure paths; Score is 0 and MatchedName empty on total
// failure. AllPossibleTickers never contains empty strings or duplicates.
type Result struct {
	MatchedName        string     `json:"matched_name,omitempty"`
	PredictedTicker    string     `json:"predicted_ticker,omitempty"`
	AllPossibleTickers []string   `json:"all_possible_tickers"`
	Score              float64    `json:"name_match_score"`
	Message            string     `json:"message,omitempty"`
	TopMatches         []TopMatch `json:"top_matches"`
	Latency            float64    `json:"api_latency"`
}

// Matched reports whether the result carries a successful match.
func (r Result) Matched() bool {
	return r.MatchedName != ""
}

func notFound(message string) Result {
	return Result{
		AllPossibleTickers: []string{},
		Message:            message,
		TopMatches:         []TopMatch{},
	}
}
