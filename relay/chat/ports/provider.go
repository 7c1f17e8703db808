package chatports

import "context"

// PromptMessage is a single role-tagged message used to build prompts.
type PromptMessage struct {
	Role    Role
	Content string
}

// Provider is the abstraction over the remote completion backend. The call is
// a single blocking round trip; no retry or streaming is layered on top.
type Provider interface {
	Complete(ctx context.Context, messages []PromptMessage) (string, error)
}
