package pipeline_test

import (
	"testing"

	"nexustalent/internal/models"
	"nexustalent/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreAnnotations(t *testing.T) {
	got, err := pipeline.ParseScoreAnnotations(`[{"id": "a1", "name": "Ana Silva", "score": 82}, {"id": 7, "name": "Bruno", "score": 40.5}, {"name": "Carla", "score": 0}]`)

	require.NoError(t, err)
	assert.Equal(t, []models.ScoreAnnotation{
		{ID: "a1", Name: "Ana Silva", Score: 82},
		{ID: "7", Name: "Bruno", Score: 40.5},
		{Name: "Carla", Score: 0},
	}, got)
}

func TestParseScoreAnnotations_Empty(t *testing.T) {
	got, err := pipeline.ParseScoreAnnotations("  ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseScoreAnnotations_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":      `[{"name": "Ana"`,
		"not an array":   `{"name": "Ana", "score": 10}`,
		"missing score":  `[{"name": "Ana"}]`,
		"empty name":     `[{"name": "", "score": 10}]`,
		"score too high": `[{"name": "Ana", "score": 101}]`,
		"negative score": `[{"name": "Ana", "score": -1}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := pipeline.ParseScoreAnnotations(raw)
			assert.Error(t, err)
		})
	}
}
