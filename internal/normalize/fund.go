package normalize

import "strings"

// DefaultFundKeywords flags ETF, fund-family and leverage/inverse products.
// Any title containing one of these (case-insensitive) is excluded from the
// matchable reference set before any stage runs.
var DefaultFundKeywords = []string{
	"etf",
	"fund",
	"trust",
	"index",
	"spdr",
	"ishares",
	"vanguard",
	"invesco",
	"direxion",
	"proshares",
	"wisdomtree",
	"first trust",
	"global x",
	"pacer",
	"vaneck",
	"blackrock",
	"amplify",
	"ark",
	"bull",
	"bear",
	"leveraged",
	"inverse",
	"daily",
	"2x",
	"3x",
	"ultra",
	"short",
	"long",
}

// IsFundLike reports whether a company title looks like an ETF or fund
// rather than an operating company, using the default keyword list.
func IsFundLike(name string) bool {
	return IsFundLikeKeywords(name, DefaultFundKeywords)
}

// IsFundLikeKeywords is the configurable form of IsFundLike. Blank input is
// never fund-like.
func IsFundLikeKeywords(name string, keywords []string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
