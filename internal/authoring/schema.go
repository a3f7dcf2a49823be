package authoring

import "github.com/abhisek/questisland/internal/llm"

// draftSchema is the structured output contract for one batch of drafts.
// Every property is required and extra keys are refused so the same
// document works in OpenAI strict mode.
var draftSchema = &llm.Schema{
	Name:        "question-drafts",
	Description: "A batch of quiz questions for young learners",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []any{"type", "text", "options", "answer", "explanation", "difficulty"},
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []any{"multiple-choice", "unscramble", "fill-in-the-blank"},
						},
						"text":        map[string]any{"type": "string"},
						"options":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"answer":      map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string"},
						"difficulty":  map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
					},
				},
			},
		},
	},
}

type draft struct {
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Difficulty  int      `json:"difficulty"`
}

type draftBatch struct {
	Questions []draft `json:"questions"`
}
