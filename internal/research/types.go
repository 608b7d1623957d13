package research

// Query modes.
const (
	ModeQuick = "quick"
	ModeDeep  = "deep"
)

// Result statuses.
const (
	StatusAnswered           = "answered"
	StatusNeedsClarification = "needs_clarification"
	StatusFallback           = "fallback"
)

// Request is one research query. It is transient; it exists only for the
// duration of a single orchestration run.
type Request struct {
	// Question is the user's free-text technical question.
	Question string `json:"question"`
	// Mode selects quick or deep synthesis. Defaults to quick.
	Mode string `json:"mode,omitempty"`
	// UserID scopes preferences and episodic memory.
	UserID string `json:"user_id,omitempty"`
	// SessionID continues an existing session when set.
	SessionID string `json:"session_id,omitempty"`
	// ParentResultID links a follow-up to the prior answer.
	ParentResultID string `json:"parent_result_id,omitempty"`
}

// Citation joins a ranked chunk with its document's title and locator.
// Labels are a dense 1..N sequence matching the order chunks were presented
// to the generator, so inline markers like [2] map back unambiguously.
type Citation struct {
	Label         int     `json:"label"`
	ChunkID       string  `json:"chunk_id"`
	DocumentTitle string  `json:"document_title"`
	SourceURL     string  `json:"source_url"`
	Snippet       string  `json:"snippet"`
	Score         float64 `json:"score"`
}

// Tradeoff is one option with pros and cons, extracted from the answer's
// metadata block.
type Tradeoff struct {
	Option string   `json:"option"`
	Pros   []string `json:"pros"`
	Cons   []string `json:"cons"`
}

// Clarification is returned instead of a synthesis when the ambiguity gate
// trips.
type Clarification struct {
	Question string `json:"question"`
	Reason   string `json:"reason"`
}

// Telemetry describes the generation call behind a result.
type Telemetry struct {
	Provider         string  `json:"provider"`
	Model            string  `json:"model"`
	Route            string  `json:"route"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
	LatencyMs        int64   `json:"latency_ms"`
}

// Result is the final validated payload of one orchestration run. It is
// created once and never mutated; a follow-up produces a new Result.
type Result struct {
	Mode                string         `json:"mode"`
	Status              string         `json:"status"`
	Answer              string         `json:"answer"`
	Citations           []Citation     `json:"citations"`
	Tradeoffs           []Tradeoff     `json:"tradeoffs"`
	FollowUpQuestions   []string       `json:"follow_up_questions"`
	ClarificationPrompt *Clarification `json:"clarification_prompt,omitempty"`
	Confidence          float64        `json:"confidence"`
	Limitations         []string       `json:"limitations"`
	Telemetry           *Telemetry     `json:"telemetry,omitempty"`
	SessionID           string         `json:"session_id"`
	MessageID           string         `json:"message_id"`
	ParentResultID      string         `json:"parent_result_id,omitempty"`
}
