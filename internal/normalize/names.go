package normalize

import (
	"strings"
	"unicode"
)

// CompanyName strips legal-entity suffixes (Inc., LLC, Corp., ...) from the
// end of a company name and tidies the whitespace and punctuation left behind.
// Any value is accepted; non-strings are coerced with ToText first.
//
// Rules run in order against the evolving string. Removing a suffix also
// removes the separators in front of it, so a suffix that was hidden behind it
// ("Acme Corp LLC") becomes trailing. The ordered pass repeats until nothing
// changes, which makes CompanyName idempotent. The result never ends in a
// comma, period or whitespace and holds no run of more than one space.
func CompanyName(raw any) string {
	s := strings.TrimSpace(ToText(raw))

	for {
		prev := s
		for _, rule := range suffixRules {
			if stripped, ok := rule.Strip(s); ok {
				s = trimTrailing(stripped)
			}
		}
		s = trimTrailing(s)
		if s == prev {
			break
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

// CompanyNames applies CompanyName to each value, keeping order.
func CompanyNames(raw []any) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = CompanyName(v)
	}
	return out
}

// Modified reports whether cleaning changed the textual form of raw.
func Modified(raw any, cleaned string) bool {
	return ToText(raw) != cleaned
}

// trimTrailing drops any trailing run of commas, periods and whitespace.
func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return r == ',' || r == '.' || unicode.IsSpace(r)
	})
}
