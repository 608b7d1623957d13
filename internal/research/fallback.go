package research

import (
	"fmt"
	"strings"

	"research-ai/internal/textutil"
)

// The deterministic local fallback is attributed to an explicit pseudo
// provider instead of borrowing the identity of whichever real provider
// happens to be configured last.
const (
	localProviderName = "local"
	localModelName    = "fallback-local"
)

// fallbackSnippetLength bounds each evidence excerpt in the template answer.
const fallbackSnippetLength = 300

// fallbackAnswer builds a template-based answer directly from the retrieved
// evidence when every provider failed. No model is involved.
func fallbackAnswer(question string, evidence []Evidence) string {
	var b strings.Builder

	if len(evidence) == 0 {
		fmt.Fprintf(&b, "No language model was reachable and no indexed material matched %q. "+
			"Please try again later, or ingest relevant documents first.", question)
		return b.String()
	}

	fmt.Fprintf(&b, "No language model was reachable, so here is the most relevant indexed material for %q:\n\n", question)
	for i, ev := range evidence {
		heading := ev.Chunk.Heading
		if heading == "" {
			heading = ev.Document.Title
		}
		fmt.Fprintf(&b, "[%d] %s - %s\n%s\n\n",
			i+1, ev.Document.Title, heading,
			textutil.Snippet(ev.Chunk.Text, fallbackSnippetLength))
	}
	b.WriteString("Retry later for a synthesized answer.")
	return b.String()
}
