package records

// Schema is a named JSON Schema definition.
type Schema struct {
	// Name identifies the schema and keys the compiled-schema cache.
	Name string

	// Definition is the JSON Schema as a Go map.
	Definition map[string]any
}

var nullableString = map[string]any{"type": []any{"string", "null"}}

var nonNegativeInt = map[string]any{"type": "integer", "minimum": 0}

// ScoreInputSchema describes a content item submitted for scoring. Enum-like
// fields are plain strings: unknown values degrade to defaults at scoring
// time instead of being rejected here.
var ScoreInputSchema = &Schema{
	Name: "score-input",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"curriculumReference": nullableString,
			"reviewStatus":        nullableString,
			"communityStats": map[string]any{
				"type": []any{"object", "null"},
				"properties": map[string]any{
					"helpfulCount":  nonNegativeInt,
					"practiceCount": nonNegativeInt,
				},
			},
			"errorReports": map[string]any{
				"type": []any{"array", "null"},
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"status": nullableString,
					},
				},
			},
		},
	},
}

// MathQuestionSchema describes a math question submitted for validation.
var MathQuestionSchema = &Schema{
	Name: "math-question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":             map[string]any{"type": "string"},
			"answerFormat":   map[string]any{"type": "string"},
			"computedAnswer": map[string]any{"type": "string"},
			"computationalVerification": map[string]any{
				"type": []any{"object", "null"},
				"properties": map[string]any{
					"expression":     nullableString,
					"expectedResult": nullableString,
					"resultFormat":   nullableString,
				},
			},
			"working": map[string]any{
				"type": []any{"object", "null"},
				"properties": map[string]any{
					"computedResult": nullableString,
				},
			},
		},
		"required": []any{"answerFormat", "computedAnswer"},
	},
}

// BundleSchema describes a content bundle. Item payloads are validated
// separately against ScoreInputSchema or MathQuestionSchema.
var BundleSchema = &Schema{
	Name: "content-bundle",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"version": map[string]any{"type": "string"},
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "string", "minLength": 1},
						"kind":     map[string]any{"type": "string", "enum": []any{"score", "question"}},
						"score":    map[string]any{"type": "object"},
						"question": map[string]any{"type": "object"},
					},
					"required": []any{"id", "kind"},
				},
			},
		},
		"required": []any{"version", "items"},
	},
}
