package adapters

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

type spanLoggerKey struct{}

// NewTracer selects the tracer for the configured tracing switch: zerolog
// spans when enabled, a noop otherwise.
func NewTracer(enabled bool, logger zerolog.Logger) ports.Tracer {
	if !enabled {
		return NoopTracer{}
	}
	return NewZerologTracer(logger)
}

// ZerologTracer implements Tracer with structured zerolog output.
type ZerologTracer struct {
	logger zerolog.Logger
}

func NewZerologTracer(logger zerolog.Logger) *ZerologTracer {
	return &ZerologTracer{logger: logger}
}

// StartSpan returns a context carrying a span-scoped logger and a finish
// function that logs duration and outcome.
func (t *ZerologTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	spanLogger := t.logger.With().Str("span", name).Fields(attrs).Logger()
	ctx = context.WithValue(ctx, spanLoggerKey{}, spanLogger)

	start := time.Now()
	spanLogger.Debug().Msg("span start")

	finish := func(err error) {
		event := spanLogger.Info()
		if err != nil {
			event = spanLogger.Error().Err(err)
		}
		event.Dur("duration", time.Since(start)).Msg("span end")
	}

	return ctx, finish
}

// Event logs a one-off event, attached to the active span when present.
func (t *ZerologTracer) Event(ctx context.Context, name string, attrs map[string]any) {
	logger := t.logger
	if spanLogger, ok := ctx.Value(spanLoggerKey{}).(zerolog.Logger); ok {
		logger = spanLogger
	}
	logger.Info().Fields(attrs).Str("event", name).Msg("trace event")
}

var _ ports.Tracer = (*ZerologTracer)(nil)
