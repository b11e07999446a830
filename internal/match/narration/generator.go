package narration

import "context"

// Prompt is one self-contained request to the generation service: the fixed
// contract text plus the serialized action batch, and the strict schema the
// reply has to follow.
type Prompt struct {
	System     string
	User       string
	SchemaName string
	Schema     any
}

// Generator is the external free-text generation service boundary. It
// returns the raw reply body; parsing and validation happen downstream.
// Implementations must honor context cancellation.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface, mostly for
// stubs in tests.
type GeneratorFunc func(ctx context.Context, prompt Prompt) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt Prompt) (string, error) {
	return f(ctx, prompt)
}
