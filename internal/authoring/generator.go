package authoring

import (
	"context"

	"github.com/vimdojo/vimdojo/internal/content"
)

// Generator produces practice exercises using an LLM provider.
type Generator interface {
	// Generate produces a single exercise for the given input context.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*content.ExerciseDef, error)
}
