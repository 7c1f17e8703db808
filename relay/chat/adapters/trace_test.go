package adapters

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracerSelectsByToggle(t *testing.T) {
	logger := zerolog.Nop()

	assert.IsType(t, &ZerologTracer{}, NewTracer(true, logger))
	assert.IsType(t, NoopTracer{}, NewTracer(false, logger))
}

func TestNoopTracerIsInert(t *testing.T) {
	tracer := NoopTracer{}

	ctx, finish := tracer.StartSpan(context.Background(), "chat_send", map[string]any{"k": "v"})
	require.NotNil(t, ctx)
	finish(nil)

	tracer.Event(ctx, "history_cleared", nil)
}

func TestZerologTracerEmitsSpanAndEvent(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewZerologTracer(zerolog.New(&buf))

	ctx, finish := tracer.StartSpan(context.Background(), "chat_send", map[string]any{"session_id": "default"})
	tracer.Event(ctx, "history_cleared", map[string]any{"session_id": "default"})
	finish(nil)

	out := buf.String()
	assert.Contains(t, out, `"span":"chat_send"`)
	assert.Contains(t, out, `"event":"history_cleared"`)
	assert.Contains(t, out, `"session_id":"default"`)
	assert.Contains(t, out, "span end")
}
