package modelcloudru

import (
	"fmt"
	"strings"
)

const (
	thoughtMarker = "Thought:"
	codeDelimiter = "<code>"

	// maxStopSequences is the provider's documented upper bound.
	maxStopSequences = 4

	// systemPromptLimit is the compaction threshold: a leading system prompt
	// strictly longer than this is replaced before dispatch.
	systemPromptLimit = 10000
)

// compactSystemPrompt replaces oversized system prompts. Only the
// load-bearing protocol instructions survive compaction.
const compactSystemPrompt = "You are an expert assistant who solves tasks step by step using code.\n" +
	"Always respond in this format:\n" +
	"Thought: [your reasoning]\n" +
	"<code>\n[your python code]\n</code>\n" +
	"Use print() to output intermediate results.\n" +
	"Use final_answer() to provide the final result."

// protocolReminder is appended to a trailing user message in code-protocol
// mode.
const protocolReminder = "\n\nRemember to respond with:\nThought: [reasoning]\n<code>\n[python code]\n</code>"

// codeProtocolMode reports whether the caller expects reasoning+code replies.
// The stop-sequence list is the only signal the framework gives us, so this
// is a substring test over its textual rendering and tolerates any element
// type.
func codeProtocolMode(stopSequences []any) bool {
	if len(stopSequences) == 0 {
		return false
	}
	return strings.Contains(fmt.Sprint(stopSequences), codeDelimiter)
}

// sanitizeStops keeps only non-empty string stop sequences, at most the first
// four, preserving input order. A nil result omits the wire field entirely.
func sanitizeStops(stopSequences []any) []string {
	var stops []string
	for _, raw := range stopSequences {
		s, ok := raw.(string)
		if !ok || s == "" {
			continue
		}
		stops = append(stops, s)
		if len(stops) == maxStopSequences {
			break
		}
	}
	return stops
}

// conform rewrites a reply that carries neither protocol marker so the
// calling agent can always parse it. Replies with either marker pass through
// verbatim.
func conform(text string) string {
	if strings.Contains(text, thoughtMarker) || strings.Contains(text, codeDelimiter) {
		return text
	}
	if looksLikeCode(text) {
		return "Thought: I will execute the requested code.\n<code>\n" + text + "\n</code>"
	}
	// The literal is wrapped unescaped; quotes in the answer are the
	// executing agent's problem, matching upstream behavior.
	return "Thought: I will print the answer.\n<code>\nprint('" + text + "')\n</code>"
}

// looksLikeCode is a deliberately forgiving keyword heuristic. It errs toward
// treating ambiguous text as code so the reply still executes.
func looksLikeCode(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "print") ||
		strings.Contains(lower, "def ") ||
		strings.Contains(text, "import ")
}

// errorContent synthesizes a reply for a failed round trip. In code-protocol
// mode the substitute still parses as reasoning plus code.
func errorContent(err error, codeMode bool) string {
	if codeMode {
		return fmt.Sprintf("Thought: An error occurred.\n<code>\nprint('Error: %v')\n</code>", err)
	}
	return fmt.Sprintf("Sorry, an error occurred: %v", err)
}
