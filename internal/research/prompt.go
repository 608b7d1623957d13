package research

import (
	"fmt"
	"strings"

	"research-ai/internal/storage"
	"research-ai/internal/textutil"
)

// promptSnippetLength bounds each evidence snippet embedded in the prompt.
const promptSnippetLength = 700

// metadataInstruction asks the model for the machine-readable tail the
// parser extracts.
const metadataInstruction = "At the very end of your answer, append a fenced code block tagged " +
	"`research-metadata` containing a single JSON object with keys " +
	`"follow_up_questions" (array of at most 5 strings), "tradeoffs" (array of ` +
	`{"option", "pros", "cons"} objects) and "confidence" (your confidence in the answer, 0 to 1).`

// buildSystemPrompt assembles the full system prompt: mode instructions,
// preference hints, numbered evidence snippets with inline-citation
// instructions, and prior-session memory context.
func buildSystemPrompt(mode string, prefs *storage.PreferenceRecord, evidence []Evidence, memories []*storage.MemoryRecord) string {
	var b strings.Builder

	b.WriteString("You are a research assistant that answers technical questions using the provided evidence.\n")
	if mode == ModeDeep {
		b.WriteString("Structure the answer with markdown sections: ## Summary, ## Analysis, ## Recommendations, ## Limitations.\n")
	} else {
		b.WriteString("Answer concisely in a single pass. Prefer short paragraphs over long exposition.\n")
	}

	writePreferenceHints(&b, prefs)

	if len(evidence) > 0 {
		b.WriteString("\nEvidence snippets, numbered for citation. Cite them inline with bracketed labels like [1] or [2] wherever they support a claim:\n\n")
		for i, ev := range evidence {
			heading := ev.Chunk.Heading
			if heading == "" {
				heading = ev.Document.Title
			}
			fmt.Fprintf(&b, "[%d] %s - %s (%s)\n%s\n\n",
				i+1, ev.Document.Title, heading, ev.Document.SourceURL,
				textutil.Snippet(ev.Chunk.Text, promptSnippetLength))
		}
		b.WriteString("Answer using only this evidence. If it is insufficient, say so explicitly.\n")
	} else {
		b.WriteString("\nNo indexed evidence matched this question. Answer from general knowledge and state that no sources were available.\n")
	}

	if len(memories) > 0 {
		b.WriteString("\nContext from this user's previous research sessions:\n")
		for _, m := range memories {
			b.WriteString("- " + m.Summary + "\n")
		}
	}

	b.WriteString("\n" + metadataInstruction + "\n")
	return b.String()
}

func writePreferenceHints(b *strings.Builder, prefs *storage.PreferenceRecord) {
	if prefs == nil {
		return
	}
	if prefs.IncludeCode {
		b.WriteString("Include code examples where they clarify the answer.\n")
	}
	switch prefs.Verbosity {
	case "brief":
		b.WriteString("The user prefers brief answers.\n")
	case "detailed":
		b.WriteString("The user prefers detailed, thorough answers.\n")
	}
	if prefs.CitationStyle == "footnote" {
		b.WriteString("Collect citations at the end of the answer rather than inline.\n")
	}
}

// clarificationUserPrompt replaces the question when the ambiguity gate
// trips: the model is told to ask one clarifying question instead of
// answering.
func clarificationUserPrompt(question string) string {
	return fmt.Sprintf("The user asked: %q\n\n"+
		"This question is too vague to answer directly. Do not attempt an answer. "+
		"Instead, ask the user exactly one clarifying question that would let you "+
		"give a useful answer, and briefly explain what is missing.", question)
}

// deriveClarification extracts the first question sentence from the
// generated text, falling back to a generic prompt.
func deriveClarification(text string) *Clarification {
	for _, sentence := range splitSentences(text) {
		if strings.HasSuffix(sentence, "?") {
			return &Clarification{
				Question: sentence,
				Reason:   "The question was too vague to answer directly.",
			}
		}
	}
	return &Clarification{
		Question: "Could you share more detail about what you are trying to accomplish?",
		Reason:   "The question was too vague to answer directly.",
	}
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '?' || r == '!' || r == '\n' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
