package storage

import (
	"context"
	"time"

	"nexustalent/internal/models"

	"github.com/google/uuid"
)

// ApplicationRepository defines the data operations the pipeline needs on applications.
type ApplicationRepository interface {
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, notes *string) error
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
}

// JobPostingRepository gives read-only access to job postings.
type JobPostingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error)
}

// DraftStore buffers uncommitted notes per pipeline view and application.
// Get returns ErrNotFound when no draft is buffered.
type DraftStore interface {
	Get(ctx context.Context, viewID, applicationID uuid.UUID) (string, error)
	Set(ctx context.Context, viewID, applicationID uuid.UUID, text string, ttl time.Duration) error
	Delete(ctx context.Context, viewID, applicationID uuid.UUID) error
}
