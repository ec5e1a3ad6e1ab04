package normalize

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// SuffixRule is one legal-entity designator stripped from the end of a name.
// Pattern is matched case-insensitively and anchored to the end of the text.
// When WordBoundary is set, the match must start the string or follow a
// non-word rune.
type SuffixRule struct {
	Name         string
	Pattern      *regexp.Regexp
	WordBoundary bool
}

func newSuffixRule(name, expr string) SuffixRule {
	return SuffixRule{
		Name:         name,
		Pattern:      regexp.MustCompile(`(?i)(?:` + expr + `)$`),
		WordBoundary: true,
	}
}

// suffixRules is applied in order. LLC appears twice on purpose: the second
// rule catches the dotted "L.L.C." forms the first one does not.
var suffixRules = []SuffixRule{
	newSuffixRule("Inc", `Inc\.?`),
	newSuffixRule("Co", `Co\.?`),
	newSuffixRule("Corp", `Corp\.?`),
	newSuffixRule("LLC", `LLC`),
	newSuffixRule("Ltd", `Ltd\.?`),
	newSuffixRule("Limited", `Limited`),
	newSuffixRule("PLC", `PLC`),
	newSuffixRule("L.P.", `L\.?P\.?`),
	newSuffixRule("L.L.C.", `L\.?L\.?C\.?`),
	newSuffixRule("P.C.", `P\.?C\.?`),
	newSuffixRule("Company", `Company`),
	newSuffixRule("Corporation", `Corporation`),
	newSuffixRule("Incorporated", `Incorporated`),
}

// SuffixRules returns a copy of the ordered rule list.
func SuffixRules() []SuffixRule {
	out := make([]SuffixRule, len(suffixRules))
	copy(out, suffixRules)
	return out
}

// Strip removes the rule's suffix from the end of s. It reports whether
// anything was removed.
func (r SuffixRule) Strip(s string) (string, bool) {
	loc := r.Pattern.FindStringIndex(s)
	if loc == nil {
		return s, false
	}
	if r.WordBoundary && loc[0] > 0 {
		prev, _ := utf8.DecodeLastRuneInString(s[:loc[0]])
		if isWordRune(prev) {
			return s, false
		}
	}
	return s[:loc[0]], true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
