package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// FileSchema is the JSON Schema every bank file must satisfy.
var FileSchema = map[string]any{
	"type":     "object",
	"required": []any{"format", "subject", "questions"},
	"properties": map[string]any{
		"format":  map[string]any{"type": "string", "pattern": `^v[0-9]+\.[0-9]+\.[0-9]+$`},
		"subject": map[string]any{"type": "string", "minLength": 1},
		"questions": map[string]any{
			"type":  "array",
			"items": QuestionSchema,
		},
	},
}

// QuestionSchema describes a single question entry.
var QuestionSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "category", "type", "text", "answer", "explanation"},
	"properties": map[string]any{
		"id":       map[string]any{"type": "string", "minLength": 1},
		"category": map[string]any{"type": "string", "enum": []any{"basic", "application", "logic", "sentence", "word"}},
		"type":     map[string]any{"type": "string", "enum": []any{"multiple-choice", "unscramble", "fill-in-the-blank"}},
		"text":     map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"answer":      map[string]any{"type": "string", "minLength": 1},
		"explanation": map[string]any{"type": "string"},
		"difficulty":  map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
	},
}

const fileSchemaURL = "schema://question-bank-file.json"

var compiledFileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants decoded JSON values, not Go literals.
	raw, err := json.Marshal(FileSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal bank schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse bank schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(fileSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(fileSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	return s, nil
})
