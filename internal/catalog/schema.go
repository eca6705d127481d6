package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// entrySchema accepts any of the three raw catalog entry shapes: a flat
// question record, a unit wrapper ({unit, words}), or a level wrapper
// ({level, units: [{unit, questions}]}).
var entrySchema = map[string]any{
	"oneOf": []any{
		map[string]any{"$ref": "#/$defs/question"},
		map[string]any{
			"type":     "object",
			"required": []any{"unit", "words"},
			"properties": map[string]any{
				"unit": map[string]any{"type": "string"},
				"words": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/question"},
				},
			},
		},
		map[string]any{
			"type":     "object",
			"required": []any{"units"},
			"properties": map[string]any{
				"level": map[string]any{"type": []any{"string", "integer"}},
				"units": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"unit", "questions"},
						"properties": map[string]any{
							"unit": map[string]any{"type": "string"},
							"questions": map[string]any{
								"type":  "array",
								"items": map[string]any{"$ref": "#/$defs/question"},
							},
						},
					},
				},
			},
		},
	},
	"$defs": map[string]any{
		"question": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":          map[string]any{"type": "integer"},
				"question":    map[string]any{"type": "string"},
				"word":        map[string]any{"type": "string"},
				"choices":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
				"correct":     map[string]any{"type": "integer"},
				"answer":      map[string]any{"type": "string"},
				"explanation": map[string]any{"type": "string"},
				"difficulty":  map[string]any{"enum": []any{"easy", "medium", "hard"}},
				"section":     map[string]any{"type": "string"},
				"unit":        map[string]any{"type": "string"},
			},
			"required": []any{"choices"},
		},
	},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// compiledEntrySchema compiles the entry schema once and caches it.
func compiledEntrySchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, so round-trip
		// the definition through encoding/json to normalize Go literals.
		raw, err := json.Marshal(entrySchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog-entry.json", parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://catalog-entry.json")
	})
	return compiledSchema, schemaErr
}

// validateEntry checks one parsed catalog entry against the entry schema.
func validateEntry(parsed any) error {
	s, err := compiledEntrySchema()
	if err != nil {
		return err
	}
	return s.Validate(parsed)
}
