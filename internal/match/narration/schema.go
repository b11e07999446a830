package narration

// Wire shape of the generation service reply: an object with a "result"
// list carrying one entry per submitted action. Matched to actions
// positionally, never by content.
type responseBody struct {
	Result []responseEntry `json:"result"`
}

type responseEntry struct {
	Narration []string `json:"narration"`
	Scorer    *string  `json:"scorer"`
}

const responseSchemaName = "match_narration"

// responseSchema is the strict JSON schema handed to the structured-output
// endpoint. It pins the shape only; phrase counts, scorer consistency and
// placeholder vocabulary are enforced by the validator.
func responseSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"result"},
		"properties": map[string]any{
			"result": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"narration", "scorer"},
					"properties": map[string]any{
						"narration": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 1,
							"maxItems": maxGoalPhrases,
						},
						"scorer": map[string]any{
							"type": []string{"string", "null"},
						},
					},
				},
			},
		},
	}
}
