package normalize

import (
	"strings"
)

// DefaultSuffixes lists corporate suffixes stripped during name preprocessing.
// Each entry carries its leading space so that only whole trailing words are
// removed. Order matters: suffixes are checked sequentially, and the list is
// re-applied until the name stops changing, so stacked suffixes such as
// "X Corp Ltd" reduce all the way down.
var DefaultSuffixes = []string{
	" inc",
	" corporation",
	" corp",
	" ltd",
	" llc",
	" co",
	" - common stock",
	"- common stock",
	" common stock",
	" incorporated",
	" plc",
	" group",
	" holdings",
	" company",
	" companies",
	" lp",
	" ag",
	" sa",
	" nv",
	" spa",
	" srl",
	" limited",
	" the",
	" and",
	" of",
	" dba",
	" llp",
	" pty",
	" s p a",
	" s a",
}

// maxSuffixPasses bounds the fixed-point suffix loop so that a pathological
// suffix list can never spin forever.
const maxSuffixPasses = 10

// Company produces the comparison key for a raw company name using the
// default suffix list. The result is used for fuzzy and vector comparison
// only; exact matching always runs against the raw title.
func Company(raw string) string {
	return CompanyWithSuffixes(raw, DefaultSuffixes)
}

// CompanyWithSuffixes normalizes a company name with a caller-supplied suffix
// list. The pipeline is fixed: lowercase, strip everything except a-z, 0-9
// and spaces, collapse whitespace, strip trailing suffixes to a fixed point,
// then collapse whitespace again. The function is total and idempotent.
func CompanyWithSuffixes(raw string, suffixes []string) string {
	s := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	s = strings.Join(strings.Fields(b.String()), " ")

	for pass := 0; pass < maxSuffixPasses; pass++ {
		stripped := false
		for _, suffix := range suffixes {
			if trimmed := strings.TrimSuffix(s, suffix); trimmed != s {
				s = trimmed
				stripped = true
			}
		}
		if !stripped {
			break
		}
	}

	return strings.Join(strings.Fields(s), " ")
}
