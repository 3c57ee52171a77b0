package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"nexustalent/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

const scoreAnnotationsSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "score"],
		"properties": {
			"id":    {"type": ["string", "number"]},
			"name":  {"type": "string", "minLength": 1},
			"score": {"type": "number", "minimum": 0, "maximum": 100}
		}
	}
}`

var scoreAnnotationsLoader = gojsonschema.NewStringLoader(scoreAnnotationsSchema)

// ParseScoreAnnotations validates and decodes the JSON array of score annotations
// passed alongside a pipeline (usually through the "scores" query parameter).
func ParseScoreAnnotations(raw string) ([]models.ScoreAnnotation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	result, err := gojsonschema.Validate(scoreAnnotationsLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse score annotations: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("invalid score annotations: %s", strings.Join(msgs, "; "))
	}

	var items []struct {
		ID    json.RawMessage `json:"id"`
		Name  string          `json:"name"`
		Score float64         `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode score annotations: %w", err)
	}

	annotations := make([]models.ScoreAnnotation, 0, len(items))
	for _, item := range items {
		annotations = append(annotations, models.ScoreAnnotation{
			ID:    annotationID(item.ID),
			Name:  item.Name,
			Score: item.Score,
		})
	}
	return annotations, nil
}

// annotationID accepts both string and numeric ids.
func annotationID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
