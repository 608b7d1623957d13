package retrieval

import "sort"

// Chunk counts retained per query mode.
const (
	KQuick = 4
	KDeep  = 8
)

// minScore is the relevance floor; chunks scoring at or below it are
// discarded before ranking.
const minScore = 0.05

// Ranked pairs an index into the scored slice with its relevance score.
type Ranked struct {
	Index int
	Score float64
}

// Rank scores every text against the query, discards scores <= minScore and
// returns the top k by descending score. Ties keep original order (stable
// sort), so earlier-indexed chunks win.
func (s *Scorer) Rank(query string, texts []string, k int) []Ranked {
	if k <= 0 || len(texts) == 0 {
		return nil
	}

	ranked := make([]Ranked, 0, len(texts))
	for i, text := range texts {
		score := s.Score(query, text)
		if score <= minScore {
			continue
		}
		ranked = append(ranked, Ranked{Index: i, Score: score})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// KForMode returns the retained-chunk budget for a query mode.
func KForMode(mode string) int {
	if mode == "deep" {
		return KDeep
	}
	return KQuick
}
