package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema pairs a name with a JSON Schema definition.
type catalogSchema struct {
	Name       string
	Definition map[string]any
}

// deltaDefinition is shared by the event schema: a signed resource delta.
var deltaDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"balance": map[string]any{"type": "integer"},
		"savings": map[string]any{"type": "integer"},
		"debt":    map[string]any{"type": "integer"},
		"gauges": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "integer"},
		},
	},
	"additionalProperties": false,
}

var eventCatalogSchema = &catalogSchema{
	Name: "event-catalog",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":         map[string]any{"type": "string", "minLength": 1},
				"title":      map[string]any{"type": "string", "minLength": 1},
				"cost":       map[string]any{"type": "integer", "minimum": 0},
				"repeatable": map[string]any{"type": "boolean"},
				"choices": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"choice_id": map[string]any{"type": "string", "minLength": 1},
							"label":     map[string]any{"type": "string", "minLength": 1},
							"delta":     deltaDefinition,
						},
						"required":             []any{"choice_id", "label"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"id", "title", "cost", "choices"},
			"additionalProperties": false,
		},
	},
}

var taskCatalogSchema = &catalogSchema{
	Name: "task-catalog",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":       map[string]any{"type": "string", "minLength": 1},
				"title":    map[string]any{"type": "string", "minLength": 1},
				"reward":   map[string]any{"type": "integer", "minimum": 0},
				"category": map[string]any{"type": "string"},
			},
			"required":             []any{"id", "title", "reward"},
			"additionalProperties": false,
		},
	},
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateDocument checks raw JSON against the given catalog schema.
func validateDocument(schema *catalogSchema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *catalogSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
