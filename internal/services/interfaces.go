package services

import (
	"context"
	"io"

	"nexustalent/internal/models"
	"nexustalent/internal/pipeline"
	"nexustalent/internal/transport/dto"

	"github.com/google/uuid"
)

// PipelineService defines the recruiter pipeline operations over open views.
type PipelineService interface {
	OpenPipeline(ctx context.Context, req *dto.OpenPipelineRequest) (*dto.PipelineResponse, error)
	GetPipeline(ctx context.Context, req *dto.PipelineViewRequest) (*dto.PipelineResponse, error)
	ListByStatus(ctx context.Context, req *dto.ListByStatusRequest) ([]models.Application, error)
	MergeScores(ctx context.Context, req *dto.MergeScoresRequest) (pipeline.MergeResult, error)
	TransitionApplication(ctx context.Context, req *dto.TransitionRequest) (pipeline.Outcome, error)
	SetNoteDraft(ctx context.Context, req *dto.SetNoteDraftRequest) error
	CommitNote(ctx context.Context, req *dto.CommitNoteRequest) (pipeline.Outcome, error)
	ListMutations(ctx context.Context, req *dto.PipelineViewRequest) ([]models.Mutation, error)
	ExportReport(ctx context.Context, req *dto.PipelineViewRequest, w io.Writer) error
	AuthorizeView(ctx context.Context, req *dto.PipelineViewRequest) error
	ClosePipeline(ctx context.Context, req *dto.PipelineViewRequest) error
}

// Broadcaster delivers board notifications to the listeners of open views.
type Broadcaster interface {
	pipeline.Notifier
	OpenView(viewID uuid.UUID)
	CloseView(viewID uuid.UUID)
}
