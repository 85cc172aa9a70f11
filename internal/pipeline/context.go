package pipeline

import "github.com/bromolabs/bromo-server/internal/ai"

// BuildContext assembles the message window sent to the model.
//
// Without a summary the full history rides along after the system prompt.
// With a summary, the older portion of the history is replaced by a compact
// "Thread context" system line and only the recent tail is kept verbatim.
// The tail is assumed to be the trailing slice of fullHistory, so that many
// entries are dropped from the older portion; no turn is ever sent twice.
func BuildContext(systemPrompt string, fullHistory []ai.Message, threadSummary string, recentTail []ai.Message) []ai.Message {
	if threadSummary == "" {
		out := make([]ai.Message, 0, 1+len(fullHistory))
		out = append(out, ai.Message{Role: "system", Content: systemPrompt})
		return append(out, fullHistory...)
	}

	var older []ai.Message
	if n := len(recentTail); n < len(fullHistory) {
		older = fullHistory[:len(fullHistory)-n]
	}
	// else degenerate but valid: tail covers (or exceeds) the whole history

	out := make([]ai.Message, 0, 2+len(older)+len(recentTail))
	out = append(out, ai.Message{Role: "system", Content: systemPrompt})
	out = append(out, ai.Message{Role: "system", Content: "Thread context: " + threadSummary})
	out = append(out, older...)
	return append(out, recentTail...)
}
