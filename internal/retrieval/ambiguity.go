package retrieval

import (
	"strings"

	"research-ai/internal/textutil"
)

// minQueryLength is the trimmed character floor below which a query is
// always considered ambiguous.
const minQueryLength = 12

// minMeaningfulTokens is how many non-weak tokens a query needs to pass the
// gate.
const minMeaningfulTokens = 2

// weakWords are filler tokens that carry no retrieval intent. The gate is a
// cheap pre-filter, not a semantic classifier; misfires on domain jargon are
// acceptable.
var weakWords = map[string]struct{}{
	"this": {}, "that": {}, "it": {}, "thing": {}, "things": {}, "stuff": {},
	"more": {}, "better": {}, "some": {}, "any": {}, "what": {}, "how": {},
	"why": {}, "can": {}, "the": {}, "about": {}, "tell": {}, "please": {},
}

// IsAmbiguous reports whether a query is too vague to answer directly. True
// when the trimmed query is shorter than minQueryLength characters, or when
// fewer than minMeaningfulTokens tokens survive weak-word removal.
func IsAmbiguous(query string) bool {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < minQueryLength {
		return true
	}

	var meaningful int
	for _, tok := range textutil.Tokenize(trimmed) {
		if _, weak := weakWords[tok]; weak {
			continue
		}
		meaningful++
		if meaningful >= minMeaningfulTokens {
			return false
		}
	}
	return meaningful < minMeaningfulTokens
}
