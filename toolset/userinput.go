package toolset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ArtAndrew/agentbridge/agent"
	"github.com/ArtAndrew/agentbridge/tooling/registry"
)

// UserInput asks the operator a question and returns one trimmed line.
type UserInput struct {
	in  *bufio.Reader
	out io.Writer
}

func NewUserInput(in io.Reader, out io.Writer) *UserInput {
	return &UserInput{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Tool exposes the prompt as a registry entry.
func (t *UserInput) Tool() registry.Tool {
	return registry.Tool{
		Definition: agent.ToolDefinition{
			Name:        "user_input",
			Description: "Gets input from the user interactively.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{
						"type":        "string",
						"description": "Prompt to show to the user",
					},
				},
				"required": []string{"prompt"},
			},
		},
		Handler: func(_ context.Context, arguments map[string]any) (string, error) {
			prompt, err := stringArgument(arguments, "prompt")
			if err != nil {
				return "", err
			}
			return t.Ask(prompt), nil
		},
	}
}

// Ask writes the prompt and reads one line. Read failures are reported in the
// result string.
func (t *UserInput) Ask(prompt string) string {
	fmt.Fprintf(t.out, "%s: ", prompt)

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Sprintf("Error getting user input: %v", err)
	}
	return strings.TrimSpace(line)
}
