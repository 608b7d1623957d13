package textutil

import "strings"

// stemRule rewrites a suffix. Rules are ordered longest/most specific first
// and the first rule whose result is still >= 3 characters wins.
type stemRule struct {
	suffix      string
	replacement string
}

var stemRules = []stemRule{
	{"ational", "ate"},
	{"ization", "ize"},
	{"isation", "ise"},
	{"fulness", "ful"},
	{"ousness", "ous"},
	{"iveness", "ive"},
	{"tional", "tion"},
	{"biliti", "ble"},
	{"lessli", "less"},
	{"entli", "ent"},
	{"ation", "ate"},
	{"alism", "al"},
	{"aliti", "al"},
	{"iviti", "ive"},
	{"ement", ""},
	{"ness", ""},
	{"able", ""},
	{"ible", ""},
	{"ance", ""},
	{"ence", ""},
	{"ment", ""},
	{"sion", "s"},
	{"tion", "t"},
	{"ing", ""},
	{"ies", "y"},
	{"ful", ""},
	{"est", ""},
	{"ed", ""},
	{"ly", ""},
	{"er", ""},
	{"es", ""},
	{"s", ""},
}

// Stem reduces a word to a crude root form via ordered suffix rewriting.
// Words shorter than 4 characters pass through unchanged, so stemming an
// already short stem is a no-op. This is deliberately not a full Porter
// stemmer; it only needs to make query and chunk vocabulary line up.
func Stem(word string) string {
	if len(word) < 4 {
		return word
	}
	for _, rule := range stemRules {
		if !strings.HasSuffix(word, rule.suffix) {
			continue
		}
		candidate := word[:len(word)-len(rule.suffix)] + rule.replacement
		if len(candidate) >= 3 {
			return candidate
		}
	}
	return word
}
