package coach

import (
	"fmt"
	"strings"

	"github.com/vimdojo/vimdojo/internal/editor"
	"github.com/vimdojo/vimdojo/internal/exercise"
)

const hintSystemPrompt = `You are an experienced vim instructor watching a learner practice. The learner has been stuck on one goal for a while. Give one short, concrete hint that nudges them forward without giving away the whole key sequence.`

func buildHintUserMessage(ex *exercise.Exercise, goalIndex int, st editor.State) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Exercise: %s\n", ex.Title))
	if ex.Description != "" {
		b.WriteString(fmt.Sprintf("Description: %s\n", ex.Description))
	}

	if goalIndex >= 0 && goalIndex < len(ex.Goals) {
		g := ex.Goals[goalIndex]
		b.WriteString(fmt.Sprintf("\nStuck goal: %s\n", g.Description))
		if g.Hint != "" {
			b.WriteString(fmt.Sprintf("Authored hint (do not repeat verbatim): %s\n", g.Hint))
		}
	}

	b.WriteString(fmt.Sprintf("\nEditor state:\nMode: %s\n", st.Mode))
	b.WriteString(fmt.Sprintf("Cursor: line %d, column %d (0-based)\n", st.CursorLine, st.CursorCol))
	if st.PendingOperator != "" {
		b.WriteString(fmt.Sprintf("Pending operator: %s\n", st.PendingOperator))
	}

	if len(ex.SampleLines) > 0 {
		b.WriteString("\nBuffer the exercise started with:\n")
		for i, line := range ex.SampleLines {
			b.WriteString(fmt.Sprintf("%d: %s\n", i+1, line))
		}
	}

	b.WriteString(`
Instructions:
1. Give exactly one hint, 1-2 sentences, plain language.
2. Name at most one or two keys or a single concept (a motion, an operator, a mode switch). Never spell out the full solution.
3. If the learner is in the wrong mode for the goal, point that out first.
4. In the keys field, list the relevant key or keys only, e.g. "j" or "ciw". Leave it empty if the hint is conceptual.`)

	return b.String()
}
