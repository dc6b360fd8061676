package authoring

import (
	"fmt"

	"github.com/vimdojo/vimdojo/internal/content"
	"github.com/vimdojo/vimdojo/internal/goal"
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(def *content.ExerciseDef, _ GenerateInput) *ValidationError {
	if def.Title == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "title is empty",
			Retryable: true,
		}
	}
	if len(def.Title) > 80 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "title exceeds 80 characters",
			Retryable: true,
		}
	}
	if def.Description == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "description is empty",
			Retryable: true,
		}
	}
	if len(def.SampleCode) == 0 || len(def.SampleCode) > 20 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "sample_code must have between 1 and 20 lines",
			Retryable: true,
		}
	}
	if len(def.Goals) == 0 || len(def.Goals) > 6 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "goals must have between 1 and 6 entries",
			Retryable: true,
		}
	}
	for i, g := range def.Goals {
		switch g.Kind {
		case goal.KindPosition, goal.KindMode, goal.KindText, goal.KindRegister, goal.KindBufferChange:
		default:
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("goal %d has unknown kind %q", i, g.Kind),
				Retryable: true,
			}
		}
		if g.Description == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("goal %d has no description", i),
				Retryable: true,
			}
		}
	}
	return nil
}

// CompileValidator runs the exercise through the same goal compiler and
// flow parser the content loader uses, so anything the generator emits
// would also load from disk.
type CompileValidator struct{}

func (v *CompileValidator) Name() string { return "compile" }

func (v *CompileValidator) Validate(def *content.ExerciseDef, _ GenerateInput) *ValidationError {
	if _, err := content.CompileExercise(*def); err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   err.Error(),
			Retryable: true,
		}
	}
	return nil
}
