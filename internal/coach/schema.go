package coach

import "github.com/vimdojo/vimdojo/internal/llm"

// HintSchema defines the JSON schema for hint generation.
var HintSchema = &llm.Schema{
	Name:        "goal-hint",
	Description: "A short coaching hint for a stuck vim exercise goal",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "1-2 sentence nudge toward the goal, without the full solution",
			},
			"keys": map[string]any{
				"type":        "string",
				"description": "The relevant key or short key sequence, empty if conceptual",
			},
		},
		"required":             []any{"hint", "keys"},
		"additionalProperties": false,
	},
}
