package llm

import (
	"context"
	"time"
)

// Turn is one prior exchange in a chat conversation, with the wire-level
// role names ("user" or "model").
type Turn struct {
	Role string
	Text string
}

// TextGenerator produces a single completion for a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ChatGenerator produces a reply to a message in the context of prior turns.
type ChatGenerator interface {
	SendMessage(ctx context.Context, message string, history []Turn) (string, error)
}

// UsageRecorder receives token accounting for every model call.
type UsageRecorder interface {
	Record(ctx context.Context, endpoint, model string, promptTokens, completionTokens int, latency time.Duration) error
}

// NopRecorder discards usage data.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, endpoint, model string, promptTokens, completionTokens int, latency time.Duration) error {
	return nil
}
