package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexustalent/internal/models"
	"nexustalent/internal/pipeline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func newApplication(name string, status models.Status) models.Application {
	return models.Application{
		ID:              uuid.New(),
		CandidateID:     uuid.New(),
		Status:          status,
		ApplicationDate: fixedNow.Add(-24 * time.Hour),
		Candidate:       models.Candidate{Name: name},
	}
}

// setupBoard loads a board over apps for a fresh job id.
func setupBoard(t *testing.T, apps []models.Application) (*pipeline.Board, *MockApplicationRepository, *recorder) {
	t.Helper()
	jobID := uuid.New()
	for i := range apps {
		apps[i].JobPostingID = jobID
	}

	mockApps := new(MockApplicationRepository)
	mockPostings := new(MockJobPostingRepository)
	mockApps.On("ListByJob", mock.Anything, jobID).Return(apps, nil).Once()
	mockPostings.On("GetByID", mock.Anything, jobID).Return(&models.JobPosting{ID: jobID, Title: "Backend Engineer"}, nil).Once()

	rec := &recorder{}
	board := pipeline.NewBoard(uuid.New(), mockApps, mockPostings, rec, pipeline.Options{
		WriteTimeout: time.Second,
		Now:          func() time.Time { return fixedNow },
	})
	board.Load(context.Background(), jobID)
	require.NoError(t, board.LoadError())
	return board, mockApps, rec
}

func collect(board *pipeline.Board, status models.Status) []models.Application {
	var out []models.Application
	for app := range board.ByStatus(status) {
		out = append(out, app)
	}
	return out
}

func TestBoard_Load_Success(t *testing.T) {
	apps := []models.Application{
		newApplication("Ana Silva", models.StatusRecebida),
		newApplication("Bruno Costa", models.StatusTeste),
	}
	board, mockApps, _ := setupBoard(t, apps)

	require.NotNil(t, board.Posting())
	assert.Equal(t, "Backend Engineer", board.Posting().Title)
	assert.Len(t, board.Snapshot(), 2)
	assert.Equal(t, apps[0].ID, board.Snapshot()[0].ID)
	mockApps.AssertExpectations(t)
}

func TestBoard_Load_ApplicationsFailureShowsEmptyPipeline(t *testing.T) {
	jobID := uuid.New()
	mockApps := new(MockApplicationRepository)
	mockPostings := new(MockJobPostingRepository)
	mockApps.On("ListByJob", mock.Anything, jobID).Return(nil, errors.New("connection refused")).Once()
	mockPostings.On("GetByID", mock.Anything, jobID).Return(&models.JobPosting{ID: jobID}, nil).Once()

	board := pipeline.NewBoard(uuid.New(), mockApps, mockPostings, nil, pipeline.Options{})
	board.Load(context.Background(), jobID)

	assert.Error(t, board.LoadError())
	assert.Empty(t, board.Snapshot())
	for _, status := range models.Statuses {
		assert.Empty(t, collect(board, status))
	}
	assert.Equal(t, jobID, board.JobID())
}

func TestBoard_Load_PostingFailureKeepsApplications(t *testing.T) {
	jobID := uuid.New()
	mockApps := new(MockApplicationRepository)
	mockPostings := new(MockJobPostingRepository)
	mockApps.On("ListByJob", mock.Anything, jobID).Return([]models.Application{newApplication("Ana", models.StatusRecebida)}, nil).Once()
	mockPostings.On("GetByID", mock.Anything, jobID).Return(nil, errors.New("timeout")).Once()

	board := pipeline.NewBoard(uuid.New(), mockApps, mockPostings, nil, pipeline.Options{})
	board.Load(context.Background(), jobID)

	assert.NoError(t, board.LoadError())
	assert.Nil(t, board.Posting())
	assert.Len(t, board.Snapshot(), 1)
}

func TestBoard_Load_DropsDuplicateIDs(t *testing.T) {
	app := newApplication("Ana", models.StatusRecebida)
	dup := app
	dup.Status = models.StatusTeste
	board, _, _ := setupBoard(t, []models.Application{app, dup})

	snapshot := board.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, models.StatusRecebida, snapshot[0].Status)
}

func TestBoard_ByStatus_PartitionsWorkingSet(t *testing.T) {
	apps := []models.Application{
		newApplication("A", models.StatusRecebida),
		newApplication("B", models.StatusTriagem),
		newApplication("C", models.StatusRecebida),
		newApplication("D", models.StatusRejeitada),
		newApplication("E", models.StatusContratado),
		newApplication("F", models.StatusOferta),
	}
	board, _, _ := setupBoard(t, apps)

	seen := make(map[uuid.UUID]int)
	total := 0
	for _, status := range models.Statuses {
		for _, app := range collect(board, status) {
			assert.Equal(t, status, app.Status)
			seen[app.ID]++
			total++
		}
	}
	assert.Equal(t, len(apps), total)
	for _, app := range apps {
		assert.Equal(t, 1, seen[app.ID], "application %s should appear in exactly one column", app.Candidate.Name)
	}

	recebida := collect(board, models.StatusRecebida)
	require.Len(t, recebida, 2)
	assert.Equal(t, "A", recebida[0].Candidate.Name)
	assert.Equal(t, "C", recebida[1].Candidate.Name)
	assert.Empty(t, collect(board, models.StatusTeste))
}

func TestBoard_ByStatus_ReflectsLaterChanges(t *testing.T) {
	app := newApplication("Ana", models.StatusRecebida)
	board, mockApps, _ := setupBoard(t, []models.Application{app})
	mockApps.On("UpdateStatus", mock.Anything, app.ID, models.StatusTeste, (*string)(nil)).Return(nil).Once()

	seq := board.ByStatus(models.StatusTeste)
	_, err := board.Transition(context.Background(), app.ID, models.StatusTeste, nil)
	require.NoError(t, err)
	board.Flush()

	var got []models.Application
	for a := range seq {
		got = append(got, a)
	}
	require.Len(t, got, 1)
	assert.Equal(t, app.ID, got[0].ID)
}

func TestBoard_ByStatus_ReturnsCopies(t *testing.T) {
	app := newApplication("Ana", models.StatusRecebida)
	board, _, _ := setupBoard(t, []models.Application{app})

	got := collect(board, models.StatusRecebida)
	require.Len(t, got, 1)
	got[0].Status = models.StatusOferta
	got[0].Candidate.Name = "changed"
	snapshot := board.Snapshot()
	snapshot[0].Notes = "changed"

	stored, ok := board.Get(app.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusRecebida, stored.Status)
	assert.Equal(t, "Ana", stored.Candidate.Name)
	assert.Empty(t, stored.Notes)
}

func TestBoard_Columns(t *testing.T) {
	board, _, _ := setupBoard(t, []models.Application{
		newApplication("A", models.StatusRecebida),
		newApplication("B", models.StatusContratado),
	})

	cols := board.Columns()
	require.Len(t, cols, len(models.Statuses))
	for i, col := range cols {
		assert.Equal(t, models.Statuses[i], col.Status)
		assert.NotNil(t, col.Applications)
	}
	assert.Len(t, cols[0].Applications, 1)
	assert.True(t, cols[5].Terminal)
	assert.True(t, cols[6].Terminal)
	assert.False(t, cols[1].Terminal)
}

func TestBoard_MergeScores_PromotesMatchedReceived(t *testing.T) {
	ana := newApplication("Ana Silva", models.StatusRecebida)
	board, _, rec := setupBoard(t, []models.Application{ana})

	res := board.MergeScores([]models.ScoreAnnotation{{ID: "1", Name: "Ana Silva", Score: 82}})

	assert.Equal(t, pipeline.MergeResult{Matched: 1, Promoted: 1}, res)
	got, ok := board.Get(ana.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusTriagem, got.Status)
	require.NotNil(t, got.Score)
	assert.Equal(t, 82.0, *got.Score)
	assert.Equal(t, []models.NotificationKind{models.NotificationScoresMerged}, rec.kinds())
}

func TestBoard_MergeScores_MatchesFileNames(t *testing.T) {
	ana := newApplication("Ana Silva", models.StatusRecebida)
	board, _, _ := setupBoard(t, []models.Application{ana})

	res := board.MergeScores([]models.ScoreAnnotation{{Name: "CV_Ana-Silva_2024.pdf", Score: 70}})

	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 0, res.Appended)
}

func TestBoard_MergeScores_FileNameAnnotation(t *testing.T) {
	a1 := newApplication("Ana Silva", models.StatusRecebida)
	board, _, _ := setupBoard(t, []models.Application{a1})

	board.MergeScores([]models.ScoreAnnotation{{ID: "x", Name: "ana_silva.pdf", Score: 82}})

	snapshot := board.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, a1.ID, snapshot[0].ID)
	assert.Equal(t, models.StatusTriagem, snapshot[0].Status)
	require.NotNil(t, snapshot[0].Score)
	assert.Equal(t, 82.0, *snapshot[0].Score)
}

func TestBoard_MergeScores_KeepsLaterStatuses(t *testing.T) {
	bruno := newApplication("Bruno Costa", models.StatusEntrevista)
	board, _, _ := setupBoard(t, []models.Application{bruno})

	res := board.MergeScores([]models.ScoreAnnotation{{Name: "bruno costa", Score: 55.5}})

	assert.Equal(t, pipeline.MergeResult{Matched: 1}, res)
	got, _ := board.Get(bruno.ID)
	assert.Equal(t, models.StatusEntrevista, got.Status)
	require.NotNil(t, got.Score)
	assert.Equal(t, 55.5, *got.Score)
}

func TestBoard_MergeScores_AppendsUnmatched(t *testing.T) {
	board, mockApps, _ := setupBoard(t, []models.Application{newApplication("Ana Silva", models.StatusRecebida)})

	res := board.MergeScores([]models.ScoreAnnotation{{ID: "42", Name: "Carla Dias", Score: 91}})

	assert.Equal(t, pipeline.MergeResult{Appended: 1}, res)
	triagem := collect(board, models.StatusTriagem)
	require.Len(t, triagem, 1)
	added := triagem[0]
	assert.True(t, added.Synthetic)
	assert.Equal(t, "42", added.SourceID)
	assert.Equal(t, "Carla Dias", added.Candidate.Name)
	assert.Equal(t, fixedNow, added.ApplicationDate)
	assert.Equal(t, board.JobID(), added.JobPostingID)

	// Synthetic records are moved locally only.
	outcome, err := board.Transition(context.Background(), added.ID, models.StatusTeste, nil)
	require.NoError(t, err)
	require.True(t, outcome.Applied)
	assert.Equal(t, models.MutationLocal, outcome.Mutation.State)
	board.Flush()
	mockApps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBoard_MergeScores_RepeatedMergeAppendsAgain(t *testing.T) {
	board, _, _ := setupBoard(t, nil)
	ann := []models.ScoreAnnotation{{Name: "Carla Dias", Score: 91}}

	board.MergeScores(ann)
	res := board.MergeScores(ann)

	assert.Equal(t, 1, res.Appended)
	assert.Len(t, board.Snapshot(), 2)
}

func TestBoard_MergeScores_Empty(t *testing.T) {
	board, _, rec := setupBoard(t, []models.Application{newApplication("Ana", models.StatusRecebida)})

	res := board.MergeScores(nil)

	assert.Equal(t, pipeline.MergeResult{}, res)
	assert.Empty(t, rec.kinds())
}
