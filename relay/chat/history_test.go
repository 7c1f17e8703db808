package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

func TestAssembleHistoryPreservesOrderAndRoles(t *testing.T) {
	now := time.Now()
	turns := []ports.Turn{
		{Seq: 1, Role: ports.RoleUser, Content: "Hello", CreatedAt: now},
		{Seq: 2, Role: ports.RoleAssistant, Content: "Hi there", CreatedAt: now},
		{Seq: 3, Role: ports.RoleUser, Content: "How are you?", CreatedAt: now},
	}

	messages := AssembleHistory(turns)

	assert.Equal(t, []ports.PromptMessage{
		{Role: ports.RoleUser, Content: "Hello"},
		{Role: ports.RoleAssistant, Content: "Hi there"},
		{Role: ports.RoleUser, Content: "How are you?"},
	}, messages)
}

func TestAssembleHistoryEmpty(t *testing.T) {
	assert.Empty(t, AssembleHistory(nil))
}

func TestUserOnlyPromptSkipsAssistantTurns(t *testing.T) {
	messages := []ports.PromptMessage{
		{Role: ports.RoleUser, Content: "first"},
		{Role: ports.RoleAssistant, Content: "reply"},
		{Role: ports.RoleUser, Content: "second"},
	}

	assert.Equal(t, "first\nsecond", UserOnlyPrompt(messages))
}

func TestUserOnlyPromptEmptyHistory(t *testing.T) {
	assert.Equal(t, "", UserOnlyPrompt(nil))
}

func TestFullTranscriptPromptIncludesBothRoles(t *testing.T) {
	messages := []ports.PromptMessage{
		{Role: ports.RoleUser, Content: "first"},
		{Role: ports.RoleAssistant, Content: "reply"},
	}

	assert.Equal(t, "user: first\nassistant: reply", FullTranscriptPrompt(messages))
}
