package chat

import (
	"strings"

	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

// AssembleHistory projects stored turns onto prompt messages, preserving
// store order. Both user and assistant turns are included, unwindowed, so
// the assembled context grows with the conversation.
func AssembleHistory(turns []ports.Turn) []ports.PromptMessage {
	messages := make([]ports.PromptMessage, len(turns))
	for i, turn := range turns {
		messages[i] = ports.PromptMessage{Role: turn.Role, Content: turn.Content}
	}
	return messages
}

// PromptPolicy flattens assembled history into the single prompt string sent
// upstream. It is a named, swappable function so the prompt-construction
// choice stays visible rather than buried in the provider.
type PromptPolicy func(messages []ports.PromptMessage) string

// UserOnlyPrompt joins the content of user-role messages with newlines.
// Assistant turns are stored and returned via the history endpoint but are
// deliberately left out of the outbound prompt; swap in FullTranscriptPrompt
// to send the whole back-and-forth.
func UserOnlyPrompt(messages []ports.PromptMessage) string {
	var parts []string
	for _, m := range messages {
		if m.Role == ports.RoleUser {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// FullTranscriptPrompt renders every message as a role-prefixed line.
func FullTranscriptPrompt(messages []ports.PromptMessage) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}
