// Package authoring generates new practice exercises with an LLM. The
// output is a content.ExerciseDef that must compile through the same
// pipeline the loader uses, so a generated exercise is rejected before
// it ever reaches a chapter file.
package authoring

// GenerateInput carries the context for one exercise generation.
type GenerateInput struct {
	// Topic is what the exercise should teach, e.g. "word motions" or
	// "delete operator with counts".
	Topic string

	// Kinds restricts the goal kinds the exercise may use. Empty means
	// all kinds. File-based sampling cannot observe text or register
	// goals, so callers targeting it pass the observable subset.
	Kinds []string

	// PriorTitles lists existing exercise titles so the generator does
	// not produce near-duplicates.
	PriorTitles []string
}
