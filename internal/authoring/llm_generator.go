package authoring

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vimdojo/vimdojo/internal/content"
	"github.com/vimdojo/vimdojo/internal/goal"
	"github.com/vimdojo/vimdojo/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// exerciseOutput is the raw LLM response before validation.
type exerciseOutput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SampleCode  []string   `json:"sample_code"`
	Flow        string     `json:"flow"`
	Goals       []goalSpec `json:"goals"`
}

type goalSpec struct {
	Kind        string `json:"kind"`
	Target      any    `json:"target"`
	Description string `json:"description"`
	Hint        string `json:"hint"`
}

// Generate produces a single exercise for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*content.ExerciseDef, error) {
	ctx = llm.WithPurpose(ctx, "exercise-gen")

	userMsg := buildUserMessage(input, g.config)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ExerciseSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw exerciseOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	def := &content.ExerciseDef{
		Title:       raw.Title,
		Description: raw.Description,
		SampleCode:  raw.SampleCode,
		Flow:        raw.Flow,
	}
	for _, gs := range raw.Goals {
		def.Goals = append(def.Goals, goal.Definition{
			Kind:        gs.Kind,
			Target:      gs.Target,
			Description: gs.Description,
			Hint:        gs.Hint,
		})
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(def, input); verr != nil {
			return nil, verr
		}
	}

	return def, nil
}
