package chat

import (
	"context"
	"strings"

	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

// Orchestrator coordinates one chat request end to end: validate, persist
// the user turn, assemble history, call the provider, persist the reply.
// It holds no per-request state; everything durable lives in the store.
type Orchestrator struct {
	store    ports.MessageStore
	provider ports.Provider
	tracer   ports.Tracer
	session  string
}

// NewOrchestrator creates an orchestrator bound to a single session id.
func NewOrchestrator(store ports.MessageStore, provider ports.Provider, tracer ports.Tracer, sessionID string) *Orchestrator {
	return &Orchestrator{
		store:    store,
		provider: provider,
		tracer:   tracer,
		session:  sessionID,
	}
}

// Send runs the full request sequence and returns the generated reply.
//
// A provider failure after the user turn has been persisted does not roll
// that turn back: the unanswered user turn stays in history. That is the
// accepted behavior, surfaced as a CompletionError.
func (o *Orchestrator) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", &ValidationError{Message: "message is required"}
	}

	ctx, finish := o.tracer.StartSpan(ctx, "chat_send", map[string]any{
		"session_id": o.session,
	})

	if _, err := o.store.Append(ctx, o.session, ports.RoleUser, message); err != nil {
		finish(err)
		return "", err
	}

	turns, err := o.store.ReadAll(ctx, o.session)
	if err != nil {
		finish(err)
		return "", err
	}

	reply, err := o.provider.Complete(ctx, AssembleHistory(turns))
	if err != nil {
		cerr := &CompletionError{Cause: err}
		finish(cerr)
		return "", cerr
	}

	if _, err := o.store.Append(ctx, o.session, ports.RoleAssistant, reply); err != nil {
		finish(err)
		return "", err
	}

	finish(nil)
	return reply, nil
}

// History returns the full ordered conversation log.
func (o *Orchestrator) History(ctx context.Context) ([]ports.Turn, error) {
	return o.store.ReadAll(ctx, o.session)
}

// Reset clears the conversation log. Both "new session" and "delete history"
// resolve to this; they only differ at the transport surface.
func (o *Orchestrator) Reset(ctx context.Context) error {
	if err := o.store.Clear(ctx, o.session); err != nil {
		return err
	}
	o.tracer.Event(ctx, "history_cleared", map[string]any{"session_id": o.session})
	return nil
}
