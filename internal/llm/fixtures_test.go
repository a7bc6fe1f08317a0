package llm

import "encoding/json"

// lessonSchema mirrors the daily lesson schema without importing the
// lessons package.
func lessonSchema() *Schema {
	return &Schema{
		Name:        "test-lesson",
		Description: "A vocabulary lesson",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"words": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"sentences": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"english": map[string]any{"type": "string"},
							"arabic":  map[string]any{"type": "string"},
						},
						"required":             []any{"english", "arabic"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"words", "sentences"},
			"additionalProperties": false,
		},
	}
}

const shortLesson = `{"words":["journey"],"sentences":[{"english":"A long journey.","arabic":"رحلة طويلة."}]}`

func lessonRequest() Request {
	return Request{
		System:    "You are an English teacher.",
		Messages:  []Message{{Role: RoleUser, Content: "Write a beginner lesson."}},
		Schema:    lessonSchema(),
		MaxTokens: 1024,
	}
}

func raw(s string) json.RawMessage { return json.RawMessage(s) }
