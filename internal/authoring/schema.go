package authoring

import "github.com/vimdojo/vimdojo/internal/llm"

// ExerciseSchema defines the JSON schema for LLM exercise generation
// responses.
var ExerciseSchema = &llm.Schema{
	Name:        "vim-exercise",
	Description: "A single vim practice exercise with sample buffer and goals",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short exercise title, e.g. \"Delete a word\"",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One or two sentences telling the learner what the exercise practices",
			},
			"sample_code": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "The starting buffer, one element per line, plain ASCII",
			},
			"flow": map[string]any{
				"type":        "string",
				"enum":        []any{"sequential", "any_order"},
				"description": "Whether goals must be satisfied in order",
			},
			"goals": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type": "string",
							"enum": []any{"position", "mode", "text", "register", "buffer_change"},
						},
						"target": map[string]any{
							"description": "Kind-specific target: [line, col] for position, mode name for mode, {line, expected} for text, {register, expected} for register, null for buffer_change",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "What the learner must do, shown during the session",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "Key sequence hint, e.g. \"use dw\". May be empty.",
						},
					},
					"required":             []any{"kind", "description"},
					"additionalProperties": false,
				},
				"description": "Between 1 and 6 goals",
			},
		},
		"required":             []any{"title", "description", "sample_code", "flow", "goals"},
		"additionalProperties": false,
	},
}
