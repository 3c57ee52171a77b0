package pipeline_test

import (
	"context"
	"sync"

	"nexustalent/internal/models"
	"nexustalent/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockApplicationRepository is a mock type for the storage.ApplicationRepository interface
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, notes *string) error {
	args := m.Called(ctx, id, status, notes)
	return args.Error(0)
}

func (m *MockApplicationRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}

var _ storage.ApplicationRepository = (*MockApplicationRepository)(nil)

// MockJobPostingRepository is a mock type for the storage.JobPostingRepository interface
type MockJobPostingRepository struct {
	mock.Mock
}

func (m *MockJobPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

var _ storage.JobPostingRepository = (*MockJobPostingRepository)(nil)

// recorder collects notifications raised by a board.
type recorder struct {
	mu    sync.Mutex
	items []models.Notification
}

func (r *recorder) Notify(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) kinds() []models.NotificationKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.NotificationKind, len(r.items))
	for i, n := range r.items {
		out[i] = n.Kind
	}
	return out
}

func (r *recorder) last(kind models.NotificationKind) (models.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].Kind == kind {
			return r.items[i], true
		}
	}
	return models.Notification{}, false
}
