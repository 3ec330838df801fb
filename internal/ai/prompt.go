package ai

import (
	"fmt"
	"strings"

	"github.com/tickermatch/internal/matcher"
)

// buildPrompt renders the company matching prompt: the input name, a numbered
// candidate list, and worked brand-name examples so the model answers in the
// "Company Name (Ticker: SYMBOL)" shape the parser expects.
func buildPrompt(companyName string, candidates []matcher.FallbackCandidate) string {
	var candidatesText strings.Builder
	for i, candidate := range candidates {
		fmt.Fprintf(&candidatesText, "%d. %s (Ticker: %s)\n", i+1, candidate.CompanyName, candidate.Ticker)
	}

	return fmt.Sprintf(`
You are an expert at matching company names and understanding the difference between brand names and legal company names.

TASK: Given the input company name, find the best match from the candidate list OR identify the correct legal company name and ticker if the input is a well-known brand/common name.

RULES:
1. FIRST: Check if the input directly matches any candidate (even with misspellings)
2. SECOND: If no direct match, consider if the input is a well-known brand name for a public company
3. Examples of brand name mappings with tickers:
   - "Google" → "Alphabet Inc. (Ticker: GOOGL)"
   - "Facebook" → "Meta Platforms Inc. (Ticker: META)"
   - "Tesla" → "Tesla Inc. (Ticker: TSLA)"
   - "Amazon" → "Amazon.com Inc. (Ticker: AMZN)"
   - "Apple" → "Apple Inc. (Ticker: AAPL)"
   - "AMD" → "Advanced Micro Devices Inc. (Ticker: AMD)"
   - "IBM" → "International Business Machines Corporation (Ticker: IBM)"

Input company name: %s

Candidates:
%s

RESPONSE FORMAT:
- If you find a match in the candidates: Reply with the exact company name from the list above
- If the input is a well-known brand name but not in candidates: Reply with the actual legal company name and ticker in this format: "Company Name (Ticker: SYMBOL)"
- If you're unsure or the company is not well-known: Reply with 'None'

Examples of correct responses:
- For "Google": "Alphabet Inc. (Ticker: GOOGL)"
- For "Facebook": "Meta Platforms Inc. (Ticker: META)"

Best match or legal company name with ticker:`, companyName, candidatesText.String())
}
