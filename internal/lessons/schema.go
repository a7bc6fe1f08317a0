package lessons

import "github.com/abhisek/lingo/internal/llm"

// DailyLessonSchema defines the JSON schema for daily lesson generation.
var DailyLessonSchema = &llm.Schema{
	Name:        "daily-lesson",
	Description: "A daily English vocabulary lesson with Arabic translations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type":        "array",
				"description": "An array of 5-7 unique English vocabulary words.",
				"items":       map[string]any{"type": "string"},
			},
			"sentences": map[string]any{
				"type":        "array",
				"description": "An array of exactly 10 unique, meaningful English sentences.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"english": map[string]any{
							"type":        "string",
							"description": "The English sentence.",
						},
						"arabic": map[string]any{
							"type":        "string",
							"description": "The Arabic translation of the sentence.",
						},
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
