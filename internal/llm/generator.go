package llm

import (
	"context"

	"matchcast/internal/match/narration"
)

// narrationMaxTokens leaves room for a full 20-phrase goal narration per
// action in a batch.
const narrationMaxTokens = 4000

// NarrationGenerator adapts the completion service to the narration
// pipeline's generation boundary. Stateless; safe for concurrent batches.
type NarrationGenerator struct {
	service *Service
}

func NewNarrationGenerator(service *Service) *NarrationGenerator {
	return &NarrationGenerator{service: service}
}

func (g *NarrationGenerator) Generate(ctx context.Context, prompt narration.Prompt) (string, error) {
	ctx = WithOperationType(ctx, "narration.generate")
	return g.service.CompleteJSONSchema(ctx, JSONSchemaCompletionRequest{
		SystemPrompt:    prompt.System,
		UserPrompt:      prompt.User,
		MaxTokens:       narrationMaxTokens,
		ReasoningEffort: "minimal",
		SchemaName:      prompt.SchemaName,
		Schema:          prompt.Schema,
	})
}
