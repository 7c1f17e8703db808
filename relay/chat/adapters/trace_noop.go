package adapters

import (
	"context"

	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

// NoopTracer discards all spans and events. Used when tracing is disabled.
type NoopTracer struct{}

func (NoopTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	return ctx, func(error) {}
}

func (NoopTracer) Event(ctx context.Context, name string, attrs map[string]any) {}

var _ ports.Tracer = NoopTracer{}
