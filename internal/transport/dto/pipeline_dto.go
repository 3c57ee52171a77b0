package dto

import (
	"nexustalent/internal/models"
	"nexustalent/internal/pipeline"

	"github.com/google/uuid"
)

// OpenPipelineRequest opens a pipeline view over one job posting.
type OpenPipelineRequest struct {
	JobID       uuid.UUID `json:"-" form:"-" validate:"required"` // From path
	RecruiterID uuid.UUID `json:"-" form:"-" validate:"required"` // Set from user context
	// Scores is the raw JSON array of score annotations from the "scores" query parameter.
	Scores string `form:"scores"`
}

// PipelineViewRequest addresses an open view on behalf of a recruiter.
type PipelineViewRequest struct {
	ViewID      uuid.UUID `json:"-" validate:"required"` // From path
	RecruiterID uuid.UUID `json:"-" validate:"required"` // Set from user context
}

type ListByStatusRequest struct {
	PipelineViewRequest
	Status models.Status `json:"-" validate:"required,pipeline_status"` // From path
}

type ScoreAnnotationRequest struct {
	ID    string   `json:"id"`
	Name  string   `json:"name" validate:"required"`
	Score *float64 `json:"score" validate:"required,gte=0,lte=100"`
}

type MergeScoresRequest struct {
	PipelineViewRequest
	Annotations []ScoreAnnotationRequest `json:"annotations" validate:"required,dive"`
}

type TransitionRequest struct {
	PipelineViewRequest
	ApplicationID uuid.UUID     `json:"-" validate:"required"` // From path
	Status        models.Status `json:"status" validate:"required,pipeline_status"`
	Notes         *string       `json:"notes,omitempty" validate:"omitempty,max=10000"`
}

type SetNoteDraftRequest struct {
	PipelineViewRequest
	ApplicationID uuid.UUID `json:"-" validate:"required"` // From path
	Text          string    `json:"text" validate:"max=10000"`
}

type CommitNoteRequest struct {
	PipelineViewRequest
	ApplicationID uuid.UUID `json:"-" validate:"required"` // From path
}

// PipelineResponse is the full board of an open view.
type PipelineResponse struct {
	ViewID     uuid.UUID             `json:"view_id"`
	JobID      uuid.UUID             `json:"job_id"`
	Posting    *models.JobPosting    `json:"posting,omitempty"`
	Columns    []pipeline.Column     `json:"columns"`
	Total      int                   `json:"total"`
	LoadError  string                `json:"load_error,omitempty"`
	Merge      *pipeline.MergeResult `json:"merge,omitempty"`
	ScoreError string                `json:"score_error,omitempty"`
}

type ColumnResponse struct {
	Status       models.Status        `json:"status"`
	Applications []models.Application `json:"applications"`
}
