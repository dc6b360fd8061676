// Package coach generates short hints for a goal the learner is stuck on.
// Generation runs asynchronously so the monitoring loop never waits on a
// network call.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vimdojo/vimdojo/internal/editor"
	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/llm"
)

// Config holds hint generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for hint generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.4,
	}
}

// Hint is one generated coaching hint.
type Hint struct {
	Text       string
	KeySummary string
}

// Service generates hints asynchronously. It implements monitor.Advisor.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *Hint
	ready   bool
}

// NewService creates a hint generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Request starts async hint generation for the goal at goalIndex. Only one
// hint is in-flight at a time; new requests replace pending ones.
func (s *Service) Request(ctx context.Context, ex *exercise.Exercise, goalIndex int, st editor.State) {
	go func() {
		hint, err := s.generate(ctx, ex, goalIndex, st)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.pending = nil
		} else {
			s.pending = hint
		}
		s.ready = true
	}()
}

// Consume returns the pending hint text if one is ready.
// Returns ("", false) when nothing is ready. After consumption the
// pending slot is cleared.
func (s *Service) Consume() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return "", false
	}
	hint := s.pending
	s.pending = nil
	s.ready = false
	if hint == nil {
		return "", false
	}
	text := hint.Text
	if hint.KeySummary != "" {
		text = fmt.Sprintf("%s (%s)", hint.Text, hint.KeySummary)
	}
	return text, true
}

type hintOutput struct {
	Hint string `json:"hint"`
	Keys string `json:"keys"`
}

func (s *Service) generate(ctx context.Context, ex *exercise.Exercise, goalIndex int, st editor.State) (*Hint, error) {
	ctx = llm.WithPurpose(ctx, "hint")

	req := llm.Request{
		System: hintSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHintUserMessage(ex, goalIndex, st)},
		},
		Schema:      HintSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	var out hintOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse hint response: %w", err)
	}

	return &Hint{Text: out.Hint, KeySummary: out.Keys}, nil
}
