// Package retrieval ranks indexed chunks against a free-text query using a
// weighted hybrid of four lexical signals, and hosts the ambiguity gate that
// screens under-specified queries before synthesis.
package retrieval

import (
	"strings"

	"research-ai/internal/textutil"
)

// BM25-style saturation parameters for the term-frequency signal.
const (
	bm25K1       = 1.2
	bm25B        = 0.75
	avgDocLength = 200.0
)

// Signal weights. The phrase bonus is a 0.2 boost scaled by 0.75 for an
// effective weight of 0.15.
const (
	weightTermFreq = 0.50
	weightBigram   = 0.20
	phraseBoost    = 0.2
	phraseScale    = 0.75
	weightSynonym  = 0.15
)

// Scorer scores a query against chunk text. The synonym table is injected so
// deployments and tests can swap the expansion vocabulary.
type Scorer struct {
	synonyms textutil.SynonymTable
}

// NewScorer creates a Scorer over the given synonym table.
func NewScorer(synonyms textutil.SynonymTable) *Scorer {
	return &Scorer{synonyms: synonyms}
}

// Score returns the hybrid relevance of chunkText for query, in [0, 1].
func (s *Scorer) Score(query, chunkText string) float64 {
	queryTokens := textutil.Tokenize(query)
	if len(queryTokens) == 0 {
		return 0
	}
	queryStems := textutil.StemAll(queryTokens)

	chunkTokens := textutil.Tokenize(chunkText)
	if len(chunkTokens) == 0 {
		return 0
	}
	chunkStems := textutil.StemAll(chunkTokens)

	chunkFreq := make(map[string]int, len(chunkStems))
	for _, stem := range chunkStems {
		chunkFreq[stem]++
	}

	score := weightTermFreq * termFrequencySignal(queryStems, chunkFreq, len(chunkTokens))
	score += weightBigram * bigramOverlapSignal(queryStems, chunkStems)
	if phraseMatch(query, chunkText) {
		score += phraseBoost * phraseScale
	}
	score += weightSynonym * s.synonymSignal(queryTokens, chunkFreq)

	if score > 1 {
		score = 1
	}
	return score
}

// termFrequencySignal accumulates a BM25-style saturated term-frequency
// contribution for each stemmed query term present in the chunk, normalized
// by the query term count.
func termFrequencySignal(queryStems []string, chunkFreq map[string]int, chunkTokenCount int) float64 {
	lengthNorm := 1 - bm25B + bm25B*(float64(chunkTokenCount)/avgDocLength)

	var sum float64
	for _, stem := range queryStems {
		tf := float64(chunkFreq[stem])
		if tf == 0 {
			continue
		}
		sum += tf * (bm25K1 + 1) / (tf + bm25K1*lengthNorm)
	}
	return sum / float64(len(queryStems))
}

// bigramOverlapSignal returns the fraction of adjacent stemmed query pairs
// that also occur adjacently in the chunk.
func bigramOverlapSignal(queryStems, chunkStems []string) float64 {
	queryBigrams := textutil.Bigrams(queryStems)
	if len(queryBigrams) == 0 {
		return 0
	}

	chunkBigrams := make(map[string]struct{})
	for _, pair := range textutil.Bigrams(chunkStems) {
		chunkBigrams[pair] = struct{}{}
	}

	var matches int
	for _, pair := range queryBigrams {
		if _, ok := chunkBigrams[pair]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(queryBigrams))
}

// phraseMatch reports whether the chunk contains the full query verbatim,
// case-insensitively.
func phraseMatch(query, chunkText string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(chunkText), q)
}

// synonymSignal returns the fraction of expansion-only synonym terms whose
// stemmed words all appear in the chunk.
func (s *Scorer) synonymSignal(queryTokens []string, chunkFreq map[string]int) float64 {
	terms := s.synonyms.ExpansionTerms(queryTokens)
	if len(terms) == 0 {
		return 0
	}

	var found int
	for _, term := range terms {
		words := textutil.Tokenize(term)
		if len(words) == 0 {
			continue
		}
		all := true
		for _, w := range words {
			if chunkFreq[textutil.Stem(w)] == 0 {
				all = false
				break
			}
		}
		if all {
			found++
		}
	}
	return float64(found) / float64(len(terms))
}
