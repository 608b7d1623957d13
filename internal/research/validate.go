package research

import "fmt"

// validateResult checks an assembled result against the response contract.
// A failure here never reaches the caller; the orchestrator substitutes
// minimalResult instead.
func validateResult(r *Result) error {
	switch r.Mode {
	case ModeQuick, ModeDeep:
	default:
		return fmt.Errorf("invalid mode %q", r.Mode)
	}

	switch r.Status {
	case StatusAnswered, StatusNeedsClarification, StatusFallback:
	default:
		return fmt.Errorf("invalid status %q", r.Status)
	}

	if r.Answer == "" {
		return fmt.Errorf("empty answer")
	}

	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range", r.Confidence)
	}

	if len(r.FollowUpQuestions) > 5 {
		return fmt.Errorf("too many follow-up questions: %d", len(r.FollowUpQuestions))
	}

	// Labels must be a dense 1..N sequence in presentation order.
	for i, c := range r.Citations {
		if c.Label != i+1 {
			return fmt.Errorf("citation label %d at position %d breaks the 1..N sequence", c.Label, i)
		}
		if c.ChunkID == "" {
			return fmt.Errorf("citation %d has no chunk reference", c.Label)
		}
	}

	if r.Status == StatusNeedsClarification && r.ClarificationPrompt == nil {
		return fmt.Errorf("needs_clarification without clarification prompt")
	}
	if r.Status != StatusNeedsClarification && r.ClarificationPrompt != nil {
		return fmt.Errorf("clarification prompt on %q result", r.Status)
	}

	for _, t := range r.Tradeoffs {
		if t.Option == "" {
			return fmt.Errorf("tradeoff with empty option")
		}
	}

	return nil
}

// minimalResult is the guaranteed-valid substitute used when validation
// fails.
func minimalResult(mode string, cause error) Result {
	return Result{
		Mode:   mode,
		Status: StatusFallback,
		Answer: "The generated answer could not be validated. Please try rephrasing your question.",
		FollowUpQuestions: []string{
			"Could you rephrase or narrow down your question?",
		},
		Confidence:  0.15,
		Limitations: []string{fmt.Sprintf("response failed validation: %v", cause)},
	}
}
