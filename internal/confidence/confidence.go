// Package confidence combines retrieval quality, answer-quality heuristics,
// model self-assessment and source coverage into one bounded score.
package confidence

// Signals are the per-run inputs to the confidence score. All component
// signals are normalized into [0, 1] before weighting.
type Signals struct {
	// ChunksFound is how many chunks survived retrieval.
	ChunksFound int
	// MaxChunks is the retained-chunk budget for the query mode.
	MaxChunks int
	// AvgRelevance is the mean relevance score of retained chunks.
	AvgRelevance float64
	// AnswerLength is the character length of the clean answer.
	AnswerLength int
	// MinExpectedLength is the mode's minimum expected answer length
	// (800 deep, 200 quick).
	MinExpectedLength int
	// HasCodeBlock and HasHeading are the markdown structure bonuses.
	HasCodeBlock bool
	HasHeading   bool
	// SelfConfidence is the model's self-reported confidence, nil if absent.
	SelfConfidence *float64
	// DistinctSources is the number of distinct cited documents.
	DistinctSources int
	// Ambiguous is true when the query tripped the ambiguity gate.
	Ambiguous bool
	// GenerationFailed is true when the whole provider chain failed.
	GenerationFailed bool
}

// Clamp bounds for the final score.
const (
	floorFailed    = 0.10
	floorNonFailed = 0.35
	ceiling        = 0.95
)

// Penalties applied after weighting.
const (
	ambiguityPenalty  = 0.15
	generationPenalty = 0.20
)

// Score computes the final confidence. The weighting adapts on whether any
// retrieval evidence exists: the two formulas live in separately testable
// functions rather than inline weight conditionals.
func Score(sig Signals) float64 {
	var weighted float64
	if sig.ChunksFound > 0 {
		weighted = scoreWithEvidence(sig)
	} else {
		weighted = scoreWithoutEvidence(sig)
	}

	if sig.Ambiguous {
		weighted -= ambiguityPenalty
	}
	if sig.GenerationFailed {
		weighted -= generationPenalty
	}

	floor := floorNonFailed
	if sig.GenerationFailed {
		floor = floorFailed
	}
	if weighted < floor {
		return floor
	}
	if weighted > ceiling {
		return ceiling
	}
	return weighted
}

// scoreWithEvidence weights all four signals when retrieval found chunks:
// retrieval 0.30, answer quality 0.25, self-assessment 0.25, coverage 0.20.
func scoreWithEvidence(sig Signals) float64 {
	return 0.30*retrievalSignal(sig) +
		0.25*answerQualitySignal(sig) +
		0.25*selfAssessmentSignal(sig) +
		0.20*coverageSignal(sig)
}

// scoreWithoutEvidence drops the retrieval signal entirely: answer quality
// 0.45, self-assessment 0.40, coverage 0.15. A near-zero retrieval signal
// would otherwise cap every no-evidence answer near 0.25 regardless of how
// good the answer is.
func scoreWithoutEvidence(sig Signals) float64 {
	return 0.45*answerQualitySignal(sig) +
		0.40*selfAssessmentSignal(sig) +
		0.15*coverageSignal(sig)
}

func retrievalSignal(sig Signals) float64 {
	var fill float64
	if sig.MaxChunks > 0 {
		fill = float64(sig.ChunksFound) / float64(sig.MaxChunks)
		if fill > 1 {
			fill = 1
		}
	}
	return 0.6*sig.AvgRelevance + 0.4*fill
}

func answerQualitySignal(sig Signals) float64 {
	minExpected := sig.MinExpectedLength
	if minExpected <= 0 {
		minExpected = 200
	}

	score := float64(sig.AnswerLength) / float64(3*minExpected)
	if score > 1 {
		score = 1
	}
	if sig.HasCodeBlock {
		score += 0.15
	}
	if sig.HasHeading {
		score += 0.15
	}
	if score > 1 {
		score = 1
	}
	return score
}

func selfAssessmentSignal(sig Signals) float64 {
	if sig.SelfConfidence != nil {
		return *sig.SelfConfidence
	}
	if sig.GenerationFailed {
		return 0.2
	}
	return 0.7
}

func coverageSignal(sig Signals) float64 {
	cov := float64(sig.DistinctSources) / 3
	if cov > 1 {
		cov = 1
	}
	return cov
}
