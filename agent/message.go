package agent

// Role identifies the author of a message in the conversation transcript.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	// RoleToolCall and RoleToolResponse are synthetic framework roles with no
	// provider equivalent; preflight folds them away before dispatch.
	RoleToolCall     Role = "tool_call"
	RoleToolResponse Role = "tool_response"
)

// ContentPart is one element of a structured content list. When a message
// carries parts, the first part's Text is authoritative.
type ContentPart struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// Message is the attribute-style inbound transcript message. Content may be a
// plain string, a []ContentPart, or nil; mapping-style transcripts bypass this
// type entirely and are discriminated by preflight.
type Message struct {
	Role    Role `json:"role"`
	Content any  `json:"content,omitempty"`
}

// PromptMessage is a provider-ready message restricted to the three wire
// roles. It is also the reply shape handed back to callers, always with
// RoleAssistant on the return path.
type PromptMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ClonePromptMessages returns copies of all prompt messages.
func ClonePromptMessages(in []PromptMessage) []PromptMessage {
	out := make([]PromptMessage, len(in))
	copy(out, in)
	return out
}
