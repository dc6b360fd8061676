package authoring

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a vim instructor authoring practice exercises for a terminal-based trainer.

Rules:
- Generate a single exercise: a short sample buffer plus 1-6 goals the learner must satisfy inside Neovim.
- Goal kinds and their targets:
  - "position": target is [line, col], both 0-based, pointing inside the sample buffer.
  - "mode": target is one of "normal", "insert", "visual", "command", or "operator_X" where X is an operator key such as d, c, or y.
  - "text": target is {"line": <0-based line>, "expected": "<exact content that line must become>"}.
  - "register": target is {"register": "<single character name>", "expected": "<exact register content>"}.
  - "buffer_change": target is null; it is satisfied by any edit.
- sample_code is the starting buffer, one array element per line. Keep it under 20 lines of plain ASCII.
- Every goal needs a short description telling the learner what to do, and may include a hint naming the keys.
- flow is "sequential" unless the goals are genuinely order-independent, then "any_order".
- Goals must be achievable in order from the sample buffer. A position goal must point at a character that exists.
- Do not reuse any title from the "existing exercises" list.`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)

	if len(input.Kinds) > 0 {
		fmt.Fprintf(&b, "Allowed goal kinds: %s\n", strings.Join(input.Kinds, ", "))
	}

	b.WriteString("\nExisting exercises (do not duplicate):\n")
	b.WriteString(buildDedup(input.PriorTitles, cfg.MaxPriorTitles))

	return b.String()
}

// buildDedup formats existing titles for the prompt, respecting the max
// limit. Returns "None" if there are no prior titles.
func buildDedup(priorTitles []string, max int) string {
	if len(priorTitles) == 0 {
		return "None"
	}

	// Keep only the most recent N titles.
	if max > 0 && len(priorTitles) > max {
		priorTitles = priorTitles[len(priorTitles)-max:]
	}

	var b strings.Builder
	for i, t := range priorTitles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}
