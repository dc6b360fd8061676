package goal

import (
	"fmt"
	"strings"

	"github.com/vimdojo/vimdojo/internal/editor"
)

// Goal kinds accepted by Compile.
const (
	KindPosition     = "position"
	KindMode         = "mode"
	KindText         = "text"
	KindRegister     = "register"
	KindBufferChange = "buffer_change"
)

// operatorPrefix marks mode targets naming an operator-pending mode,
// e.g. "operator_d".
const operatorPrefix = "operator_"

// UnknownKindError reports a goal definition with an unrecognized kind.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown goal kind: %q", e.Kind)
}

// UnknownModeError reports a mode goal naming an unrecognized mode.
type UnknownModeError struct {
	Value string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown mode: %q", e.Value)
}

// TargetError reports a goal target whose shape does not match its kind.
type TargetError struct {
	Kind   string
	Reason string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("invalid %s target: %s", e.Kind, e.Reason)
}

// Compile converts a declarative definition into a typed Goal, validating
// the target shape for the definition's kind. All validation happens here,
// at load time; the detector never inspects untyped values.
func Compile(def Definition) (Goal, error) {
	target, err := compileTarget(def)
	if err != nil {
		return Goal{}, err
	}
	return Goal{
		Target:      target,
		Description: def.Description,
		Hint:        def.Hint,
	}, nil
}

// CompileAll compiles every definition, failing on the first error so an
// exercise never starts with a partially-compiled goal list.
func CompileAll(defs []Definition) ([]Goal, error) {
	goals := make([]Goal, 0, len(defs))
	for i, def := range defs {
		g, err := Compile(def)
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", i, err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func compileTarget(def Definition) (Target, error) {
	switch def.Kind {
	case KindPosition:
		return compilePosition(def.Target)
	case KindMode:
		return compileMode(def.Target)
	case KindText:
		return compileText(def.Target)
	case KindRegister:
		return compileRegister(def.Target)
	case KindBufferChange:
		return BufferChanged{}, nil
	default:
		return nil, &UnknownKindError{Kind: def.Kind}
	}
}

func compilePosition(target any) (Target, error) {
	arr, ok := target.([]any)
	if !ok {
		return nil, &TargetError{Kind: KindPosition, Reason: "must be a [line, col] array"}
	}
	if len(arr) != 2 {
		return nil, &TargetError{Kind: KindPosition, Reason: fmt.Sprintf("must have 2 elements, got %d", len(arr))}
	}
	// Non-numeric entries coerce to 0. Lenient on purpose: content files
	// are hand-written and a zero default beats rejecting the chapter.
	return Position{Line: coerceInt(arr[0]), Col: coerceInt(arr[1])}, nil
}

func compileMode(target any) (Target, error) {
	s, ok := target.(string)
	if !ok {
		return nil, &TargetError{Kind: KindMode, Reason: "must be a string"}
	}

	if op, found := strings.CutPrefix(s, operatorPrefix); found {
		return ModeIs{Mode: editor.OperatorPending(op)}, nil
	}

	switch s {
	case "normal":
		return ModeIs{Mode: editor.Normal}, nil
	case "insert":
		return ModeIs{Mode: editor.Insert}, nil
	case "visual":
		return ModeIs{Mode: editor.Visual}, nil
	case "visual_line":
		return ModeIs{Mode: editor.VisualLine}, nil
	case "visual_block":
		return ModeIs{Mode: editor.VisualBlock}, nil
	case "command":
		return ModeIs{Mode: editor.Command}, nil
	default:
		return nil, &UnknownModeError{Value: s}
	}
}

func compileText(target any) (Target, error) {
	obj, ok := asObject(target)
	if !ok {
		return nil, &TargetError{Kind: KindText, Reason: "must be an object with line and expected"}
	}
	return TextAt{
		Line:     coerceInt(obj["line"]),
		Expected: coerceString(obj["expected"]),
	}, nil
}

func compileRegister(target any) (Target, error) {
	obj, ok := asObject(target)
	if !ok {
		return nil, &TargetError{Kind: KindRegister, Reason: "must be an object with register and expected"}
	}
	return RegisterEquals{
		Register: coerceString(obj["register"]),
		Expected: coerceString(obj["expected"]),
	}, nil
}

// asObject normalizes the map forms produced by the YAML and JSON decoders.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// coerceInt extracts a non-negative integer from a decoded YAML/JSON value.
// Missing, non-numeric, or negative values coerce to 0.
func coerceInt(v any) int {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case uint64:
		n = int(x)
	case float64:
		n = int(x)
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// coerceString extracts a string; anything else coerces to empty.
func coerceString(v any) string {
	s, _ := v.(string)
	return s
}
