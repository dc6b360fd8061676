package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// chapterSchema is the structural contract for chapter files. Goal targets
// are left open because their shape depends on the goal kind; the compiler
// checks them.
var chapterSchema = map[string]any{
	"type":     "object",
	"required": []any{"chapter", "exercises"},
	"properties": map[string]any{
		"chapter": map[string]any{
			"type":     "object",
			"required": []any{"number", "title"},
			"properties": map[string]any{
				"number":      map[string]any{"type": "integer", "minimum": 1},
				"title":       map[string]any{"type": "string", "minLength": 1},
				"description": map[string]any{"type": "string"},
			},
		},
		"exercises": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"title", "goals"},
				"properties": map[string]any{
					"title":       map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"sample_code": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"flow": map[string]any{
						"enum": []any{"sequential", "any_order", "parallel"},
					},
					"cursor_start": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "integer"},
						"minItems": 2,
						"maxItems": 2,
					},
					"goals": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"kind"},
							"properties": map[string]any{
								"kind":        map[string]any{"type": "string", "minLength": 1},
								"description": map[string]any{"type": "string"},
								"hint":        map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	},
}

var (
	compiledChapterSchema *jsonschema.Schema
	compileSchemaOnce     sync.Once
	compileSchemaErr      error
)

// ValidateChapter checks raw chapter YAML against the chapter schema.
func ValidateChapter(raw []byte) error {
	// The schema validator works on parsed JSON values, so round-trip the
	// YAML through a generic document first.
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse chapter: %w", err)
	}
	doc = normalizeYAML(doc)

	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("chapter schema: %w", err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		defBytes, err := json.Marshal(chapterSchema)
		if err != nil {
			compileSchemaErr = fmt.Errorf("marshal chapter schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileSchemaErr = fmt.Errorf("parse chapter schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://chapter.json", defParsed); err != nil {
			compileSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledChapterSchema, compileSchemaErr = c.Compile("schema://chapter.json")
	})
	return compiledChapterSchema, compileSchemaErr
}

// normalizeYAML converts map[any]any trees produced by YAML decoding into
// the map[string]any trees the validator expects, and integers into
// float64 the way encoding/json would decode them.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return v
	}
}
