package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nexustalent/config"
	"nexustalent/internal/models"
	"nexustalent/internal/storage"
	"nexustalent/internal/storage/drafts"
	"nexustalent/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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
	return m.Called(ctx, id, status, notes).Error(0)
}

func (m *MockApplicationRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	return m.Called(ctx, id, notes).Error(0)
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

type fakeBroadcaster struct {
	mu     sync.Mutex
	sent   []models.Notification
	opened []uuid.UUID
	closed []uuid.UUID
}

func (b *fakeBroadcaster) Notify(n models.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, n)
}

func (b *fakeBroadcaster) OpenView(viewID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened = append(b.opened, viewID)
}

func (b *fakeBroadcaster) CloseView(viewID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = append(b.closed, viewID)
}

var _ Broadcaster = (*fakeBroadcaster)(nil)

type serviceFixture struct {
	svc         *PipelineViews
	apps        *MockApplicationRepository
	postings    *MockJobPostingRepository
	drafts      *drafts.MemoryStore
	broadcaster *fakeBroadcaster
	jobID       uuid.UUID
	recruiterID uuid.UUID
	ana         models.Application
	bruno       models.Application
}

func setupPipelineServiceTest(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		apps:        new(MockApplicationRepository),
		postings:    new(MockJobPostingRepository),
		drafts:      drafts.NewMemoryStore(),
		broadcaster: &fakeBroadcaster{},
		jobID:       uuid.New(),
		recruiterID: uuid.New(),
	}
	f.ana = models.Application{ID: uuid.New(), JobPostingID: f.jobID, Status: models.StatusRecebida, Candidate: models.Candidate{Name: "Ana Silva"}}
	f.bruno = models.Application{ID: uuid.New(), JobPostingID: f.jobID, Status: models.StatusTeste, Candidate: models.Candidate{Name: "Bruno Costa"}}

	f.apps.On("ListByJob", mock.Anything, f.jobID).Return([]models.Application{f.ana, f.bruno}, nil)
	f.postings.On("GetByID", mock.Anything, f.jobID).Return(&models.JobPosting{ID: f.jobID, Title: "Backend Engineer"}, nil)

	f.svc = NewPipelineService(f.apps, f.postings, f.drafts, f.broadcaster, config.PipelineConfig{
		WriteTimeout: time.Second,
		ViewTTL:      time.Hour,
	})
	return f
}

func (f *serviceFixture) open(t *testing.T, scores string) *dto.PipelineResponse {
	t.Helper()
	resp, err := f.svc.OpenPipeline(context.Background(), &dto.OpenPipelineRequest{
		JobID:       f.jobID,
		RecruiterID: f.recruiterID,
		Scores:      scores,
	})
	require.NoError(t, err)
	return resp
}

func (f *serviceFixture) viewReq(viewID uuid.UUID) dto.PipelineViewRequest {
	return dto.PipelineViewRequest{ViewID: viewID, RecruiterID: f.recruiterID}
}

func TestPipelineService_OpenPipeline(t *testing.T) {
	f := setupPipelineServiceTest(t)

	resp := f.open(t, "")

	assert.NotEqual(t, uuid.Nil, resp.ViewID)
	assert.Equal(t, f.jobID, resp.JobID)
	assert.Equal(t, 2, resp.Total)
	require.NotNil(t, resp.Posting)
	assert.Equal(t, "Backend Engineer", resp.Posting.Title)
	require.Len(t, resp.Columns, len(models.Statuses))
	assert.Len(t, resp.Columns[0].Applications, 1)
	assert.Nil(t, resp.Merge)
	assert.Empty(t, resp.ScoreError)
	assert.Empty(t, resp.LoadError)
}

func TestPipelineService_OpenPipeline_MergesScores(t *testing.T) {
	f := setupPipelineServiceTest(t)

	resp := f.open(t, `[{"id": 1, "name": "Ana Silva", "score": 82}, {"id": 2, "name": "Carla Dias", "score": 75}]`)

	require.NotNil(t, resp.Merge)
	assert.Equal(t, 1, resp.Merge.Matched)
	assert.Equal(t, 1, resp.Merge.Promoted)
	assert.Equal(t, 1, resp.Merge.Appended)
	assert.Equal(t, 3, resp.Total)
	assert.Empty(t, resp.Columns[0].Applications)
	assert.Len(t, resp.Columns[1].Applications, 2)
}

func TestPipelineService_OpenPipeline_BadScoresAreIgnored(t *testing.T) {
	f := setupPipelineServiceTest(t)

	resp := f.open(t, `[{"name": "Ana"`)

	assert.NotEmpty(t, resp.ScoreError)
	assert.Nil(t, resp.Merge)
	assert.Equal(t, 2, resp.Total)
}

func TestPipelineService_OpenPipeline_LoadFailure(t *testing.T) {
	f := setupPipelineServiceTest(t)
	failingJob := uuid.New()
	f.apps.On("ListByJob", mock.Anything, failingJob).Return(nil, errors.New("db down"))
	f.postings.On("GetByID", mock.Anything, failingJob).Return(nil, storage.ErrNotFound)

	resp, err := f.svc.OpenPipeline(context.Background(), &dto.OpenPipelineRequest{JobID: failingJob, RecruiterID: f.recruiterID})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.NotEmpty(t, resp.LoadError)
	assert.Nil(t, resp.Posting)
}

func TestPipelineService_ViewAccess(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")
	ctx := context.Background()

	_, err := f.svc.GetPipeline(ctx, &dto.PipelineViewRequest{ViewID: resp.ViewID, RecruiterID: uuid.New()})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.GetPipeline(ctx, &dto.PipelineViewRequest{ViewID: uuid.New(), RecruiterID: f.recruiterID})
	assert.ErrorIs(t, err, ErrNotFound)

	req := f.viewReq(resp.ViewID)
	assert.NoError(t, f.svc.AuthorizeView(ctx, &req))
}

func TestPipelineService_ListByStatus(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")

	apps, err := f.svc.ListByStatus(context.Background(), &dto.ListByStatusRequest{
		PipelineViewRequest: f.viewReq(resp.ViewID),
		Status:              models.StatusTeste,
	})

	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, f.bruno.ID, apps[0].ID)

	empty, err := f.svc.ListByStatus(context.Background(), &dto.ListByStatusRequest{
		PipelineViewRequest: f.viewReq(resp.ViewID),
		Status:              models.StatusOferta,
	})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPipelineService_MergeScores(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")
	score := 60.0

	res, err := f.svc.MergeScores(context.Background(), &dto.MergeScoresRequest{
		PipelineViewRequest: f.viewReq(resp.ViewID),
		Annotations:         []dto.ScoreAnnotationRequest{{ID: "x", Name: "bruno costa", Score: &score}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 0, res.Promoted)
}

func TestPipelineService_TransitionApplication(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")
	f.apps.On("UpdateStatus", mock.Anything, f.ana.ID, models.StatusEntrevista, (*string)(nil)).Return(nil).Once()

	outcome, err := f.svc.TransitionApplication(context.Background(), &dto.TransitionRequest{
		PipelineViewRequest: f.viewReq(resp.ViewID),
		ApplicationID:       f.ana.ID,
		Status:              models.StatusEntrevista,
	})
	require.NoError(t, err)
	assert.True(t, outcome.Applied)

	f.svc.CloseAll(context.Background())
	f.apps.AssertExpectations(t)
}

func TestPipelineService_TransitionApplication_UnknownApplication(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")

	outcome, err := f.svc.TransitionApplication(context.Background(), &dto.TransitionRequest{
		PipelineViewRequest: f.viewReq(resp.ViewID),
		ApplicationID:       uuid.New(),
		Status:              models.StatusOferta,
	})

	require.NoError(t, err)
	assert.False(t, outcome.Applied)
}

func TestPipelineService_TransitionApplication_InvalidStatus(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")

	_, err := f.svc.TransitionApplication(context.Background(), &dto.TransitionRequest{
		PipelineViewRequest: f.viewReq(resp.ViewID),
		ApplicationID:       f.ana.ID,
		Status:              "Pausada",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestPipelineService_NotesFlow(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")
	ctx := context.Background()
	f.apps.On("UpdateNotes", mock.Anything, f.bruno.ID, "Solid test").Return(nil).Once()

	require.NoError(t, f.svc.SetNoteDraft(ctx, &dto.SetNoteDraftRequest{
		PipelineViewRequest: f.viewReq(resp.ViewID),
		ApplicationID:       f.bruno.ID,
		Text:                "Solid test",
	}))
	outcome, err := f.svc.CommitNote(ctx, &dto.CommitNoteRequest{
		PipelineViewRequest: f.viewReq(resp.ViewID),
		ApplicationID:       f.bruno.ID,
	})
	require.NoError(t, err)
	assert.True(t, outcome.Applied)

	req := f.viewReq(resp.ViewID)
	f.svc.CloseAll(ctx)
	f.apps.AssertExpectations(t)

	_, err = f.svc.ListMutations(ctx, &req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPipelineService_ListMutations(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")
	ctx := context.Background()
	f.apps.On("UpdateStatus", mock.Anything, f.ana.ID, models.StatusRejeitada, (*string)(nil)).Return(errors.New("deadlock")).Once()
	req := f.viewReq(resp.ViewID)

	_, err := f.svc.TransitionApplication(ctx, &dto.TransitionRequest{PipelineViewRequest: req, ApplicationID: f.ana.ID, Status: models.StatusRejeitada})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mutations, err := f.svc.ListMutations(ctx, &req)
		return err == nil && len(mutations) == 1 && mutations[0].State == models.MutationFailed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPipelineService_ExportReport(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")
	req := f.viewReq(resp.ViewID)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportReport(context.Background(), &req, &buf))
	assert.NotZero(t, buf.Len())
}

func TestPipelineService_ClosePipeline(t *testing.T) {
	f := setupPipelineServiceTest(t)
	resp := f.open(t, "")
	ctx := context.Background()
	req := f.viewReq(resp.ViewID)
	require.NoError(t, f.drafts.Set(ctx, resp.ViewID, f.ana.ID, "unsaved", 0))

	require.NoError(t, f.svc.ClosePipeline(ctx, &req))

	_, err := f.svc.GetPipeline(ctx, &req)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.drafts.Get(ctx, resp.ViewID, f.ana.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, []uuid.UUID{resp.ViewID}, f.broadcaster.opened)
	assert.Equal(t, []uuid.UUID{resp.ViewID}, f.broadcaster.closed)
}

func TestPipelineService_EvictIdle(t *testing.T) {
	f := setupPipelineServiceTest(t)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }
	stale := f.open(t, "")

	now = now.Add(90 * time.Minute)
	fresh := f.open(t, "")

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, f.svc.EvictIdle(context.Background()))

	staleReq, freshReq := f.viewReq(stale.ViewID), f.viewReq(fresh.ViewID)
	_, err := f.svc.GetPipeline(context.Background(), &staleReq)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.GetPipeline(context.Background(), &freshReq)
	assert.NoError(t, err)
}
