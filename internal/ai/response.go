package ai

import "strings"

// responsePrefixes are the conversational lead-ins models sometimes prepend
// despite the response-format instructions. Only the first matching prefix is
// stripped.
var responsePrefixes = []string{
	"Legal Company Name: ",
	"Best match: ",
	"Company: ",
	"Match: ",
}

// ExtractCompanyAndTicker parses a model answer of the form
// "Company Name (Ticker: SYMBOL)" into its parts. Answers without the ticker
// suffix yield the trimmed text as the company name and an empty ticker.
func ExtractCompanyAndTicker(text string) (string, string) {
	text = strings.TrimSpace(text)

	for _, prefix := range responsePrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
			break
		}
	}

	if idx := strings.Index(text, " (Ticker:"); idx >= 0 && strings.HasSuffix(text, ")") {
		companyName := strings.TrimSpace(text[:idx])
		ticker := strings.TrimSpace(strings.ReplaceAll(text[idx+len(" (Ticker:"):], ")", ""))
		return companyName, ticker
	}

	return text, ""
}
