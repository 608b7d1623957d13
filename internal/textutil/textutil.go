// Package textutil provides the pure text primitives shared by the retrieval
// scorer, the chunker and the research engine: tokenization, rule-based
// stemming, bigram generation, synonym expansion and token/cost estimation.
package textutil

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text, splits on runs of non-alphanumeric characters and
// drops tokens of length <= 2.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}

	fields := strings.Fields(builder.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		tokens = append(tokens, f)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// StemAll applies Stem to every token.
func StemAll(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	stems := make([]string, len(tokens))
	for i, tok := range tokens {
		stems[i] = Stem(tok)
	}
	return stems
}

// Bigrams returns adjacent token pairs joined with a single space.
// A slice with fewer than two tokens yields nil.
func Bigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return nil
	}
	pairs := make([]string, 0, len(tokens)-1)
	for i := 0; i+1 < len(tokens); i++ {
		pairs = append(pairs, tokens[i]+" "+tokens[i+1])
	}
	return pairs
}

// EstimateTokens approximates the LLM token count of text as len/4.
// Providers that report real usage take precedence over this estimate.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}

// Snippet truncates text to at most max runes, cutting back to the last
// whitespace so words are never split. Text that already fits is returned
// unchanged.
func Snippet(text string, max int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
