// Package preflight converts heterogeneous framework transcripts into the
// strict three-role shape accepted by chat-completion providers.
package preflight

import (
	"fmt"
	"strings"

	"github.com/ArtAndrew/agentbridge/agent"
)

// Normalize flattens a transcript of arbitrary message shapes into
// provider-ready prompt messages, preserving relative order. It never fails:
// unresolvable values render through generic string conversion and
// unrecognized roles are dropped, so a framework adding new role kinds cannot
// break request assembly.
func Normalize(transcript []any) []agent.PromptMessage {
	normalized := make([]agent.PromptMessage, 0, len(transcript))
	for _, raw := range transcript {
		role, content := resolve(raw)
		switch role {
		case "tool_call", "tool-call":
			// The provider has no tool-invocation turn; the following tool
			// response carries the needed context.
		case "tool_response", "tool-response":
			normalized = append(normalized, agent.PromptMessage{Role: agent.RoleAssistant, Content: content})
		case "system":
			normalized = append(normalized, agent.PromptMessage{Role: agent.RoleSystem, Content: content})
		case "user":
			normalized = append(normalized, agent.PromptMessage{Role: agent.RoleUser, Content: content})
		case "assistant":
			normalized = append(normalized, agent.PromptMessage{Role: agent.RoleAssistant, Content: content})
		default:
			// Unknown roles are dropped on purpose: forward compatibility
			// with framework role additions.
		}
	}
	return normalized
}

// resolve discriminates the inbound shape once, at this boundary, and returns
// the message's role and content as plain strings.
func resolve(raw any) (role string, content string) {
	switch message := raw.(type) {
	case agent.Message:
		return normalizeRole(string(message.Role)), resolveContent(message.Content, message)
	case *agent.Message:
		if message == nil {
			return "user", ""
		}
		return normalizeRole(string(message.Role)), resolveContent(message.Content, *message)
	case agent.PromptMessage:
		return normalizeRole(string(message.Role)), message.Content
	case map[string]any:
		role = "user"
		if r, ok := message["role"]; ok {
			role = normalizeRole(fmt.Sprint(r))
		}
		return role, resolveContent(message["content"], message)
	case map[string]string:
		role = "user"
		if r, ok := message["role"]; ok {
			role = normalizeRole(r)
		}
		return role, message["content"]
	default:
		// Not message-like at all: treat as user-authored text.
		return "user", fmt.Sprint(raw)
	}
}

// normalizeRole strips enum-style namespace prefixes (MessageRole.USER) and
// lower-cases the remainder.
func normalizeRole(role string) string {
	if i := strings.LastIndex(role, "."); i >= 0 {
		role = role[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(role))
}

// resolveContent renders message content as a string. A structured content
// list with at least one element yields the first part's text; an absent
// content on an attribute-style message falls back to rendering the whole
// message; everything else goes through generic string conversion.
func resolveContent(content any, whole any) string {
	switch c := content.(type) {
	case nil:
		if _, mapping := whole.(map[string]any); mapping {
			return ""
		}
		return fmt.Sprint(whole)
	case string:
		return c
	case []agent.ContentPart:
		if len(c) > 0 {
			return c[0].Text
		}
		return fmt.Sprint(c)
	case []map[string]any:
		if len(c) > 0 {
			if text, ok := c[0]["text"]; ok {
				return fmt.Sprint(text)
			}
		}
		return fmt.Sprint(c)
	case []any:
		if len(c) > 0 {
			switch part := c[0].(type) {
			case agent.ContentPart:
				return part.Text
			case map[string]any:
				if text, ok := part["text"]; ok {
					return fmt.Sprint(text)
				}
			}
		}
		return fmt.Sprint(c)
	default:
		return fmt.Sprint(c)
	}
}
