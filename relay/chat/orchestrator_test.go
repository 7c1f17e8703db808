package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

// memStore implements MessageStore in memory for orchestrator tests.
type memStore struct {
	turns     []ports.Turn
	seq       int64
	appendErr error
}

func (s *memStore) Append(ctx context.Context, sessionID string, role ports.Role, content string) (ports.Turn, error) {
	if s.appendErr != nil {
		return ports.Turn{}, s.appendErr
	}
	s.seq++
	turn := ports.Turn{Seq: s.seq, Role: role, Content: content, CreatedAt: time.Now()}
	s.turns = append(s.turns, turn)
	return turn, nil
}

func (s *memStore) ReadAll(ctx context.Context, sessionID string) ([]ports.Turn, error) {
	out := make([]ports.Turn, len(s.turns))
	copy(out, s.turns)
	return out, nil
}

func (s *memStore) Clear(ctx context.Context, sessionID string) error {
	s.turns = nil
	return nil
}

// stubProvider implements Provider for tests.
type stubProvider struct {
	reply    string
	err      error
	received []ports.PromptMessage
}

func (p *stubProvider) Complete(ctx context.Context, messages []ports.PromptMessage) (string, error) {
	p.received = messages
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type noopTracer struct{}

func (noopTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	return ctx, func(error) {}
}

func (noopTracer) Event(ctx context.Context, name string, attrs map[string]any) {}

func newTestOrchestrator(store ports.MessageStore, provider ports.Provider) *Orchestrator {
	return NewOrchestrator(store, provider, noopTracer{}, "default")
}

func TestSendHappyPath(t *testing.T) {
	store := &memStore{}
	provider := &stubProvider{reply: "Hi there"}
	orch := newTestOrchestrator(store, provider)

	reply, err := orch.Send(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)

	// the provider saw the just-appended user turn
	assert.Equal(t, []ports.PromptMessage{{Role: ports.RoleUser, Content: "Hello"}}, provider.received)

	turns, err := orch.History(context.Background())
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, ports.RoleUser, turns[0].Role)
	assert.Equal(t, "Hello", turns[0].Content)
	assert.Equal(t, ports.RoleAssistant, turns[1].Role)
	assert.Equal(t, "Hi there", turns[1].Content)
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	store := &memStore{}
	orch := newTestOrchestrator(store, &stubProvider{reply: "unused"})

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := orch.Send(context.Background(), message)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, store.turns, "no turn may be appended for %q", message)
	}
}

func TestSendTrimsWhitespace(t *testing.T) {
	store := &memStore{}
	orch := newTestOrchestrator(store, &stubProvider{reply: "ok"})

	_, err := orch.Send(context.Background(), "  Hello  ")
	require.NoError(t, err)
	assert.Equal(t, "Hello", store.turns[0].Content)
}

func TestSendCompletionFailureLeavesOrphanedUserTurn(t *testing.T) {
	store := &memStore{}
	_, err := store.Append(context.Background(), "default", ports.RoleUser, "earlier unanswered")
	require.NoError(t, err)

	provider := &stubProvider{err: errors.New("upstream quota exceeded")}
	orch := newTestOrchestrator(store, provider)

	_, err = orch.Send(context.Background(), "Hello")

	var cerr *CompletionError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "upstream quota exceeded")

	// the user turn stays; no assistant turn was written
	turns, readErr := orch.History(context.Background())
	require.NoError(t, readErr)
	require.Len(t, turns, 2)
	assert.Equal(t, ports.RoleUser, turns[0].Role)
	assert.Equal(t, ports.RoleUser, turns[1].Role)
	assert.Equal(t, "Hello", turns[1].Content)
}

func TestSendStorageFailureAbortsBeforeProvider(t *testing.T) {
	store := &memStore{appendErr: &StorageError{Op: "append", Cause: errors.New("disk full")}}
	provider := &stubProvider{reply: "never"}
	orch := newTestOrchestrator(store, provider)

	_, err := orch.Send(context.Background(), "Hello")

	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Nil(t, provider.received, "provider must not be called when the append fails")
}

func TestResetClearsHistory(t *testing.T) {
	store := &memStore{}
	orch := newTestOrchestrator(store, &stubProvider{reply: "ok"})

	for _, msg := range []string{"one", "two"} {
		_, err := orch.Send(context.Background(), msg)
		require.NoError(t, err)
	}
	turns, err := orch.History(context.Background())
	require.NoError(t, err)
	require.Len(t, turns, 4)

	require.NoError(t, orch.Reset(context.Background()))

	turns, err = orch.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, turns)

	// clearing twice is the same as clearing once
	require.NoError(t, orch.Reset(context.Background()))
	turns, err = orch.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, turns)
}
