package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"nexustalent/config"
	"nexustalent/internal/export"
	"nexustalent/internal/models"
	"nexustalent/internal/pipeline"
	"nexustalent/internal/storage"
	"nexustalent/internal/transport/dto"

	"github.com/google/uuid"
)

// view is one open pipeline board and the recruiter who owns it.
type view struct {
	board      *pipeline.Board
	notes      *pipeline.NotesEditor
	ownerID    uuid.UUID
	lastAccess time.Time
}

// PipelineViews implements PipelineService by keeping every open board in memory.
type PipelineViews struct {
	apps        storage.ApplicationRepository
	postings    storage.JobPostingRepository
	drafts      storage.DraftStore
	broadcaster Broadcaster
	cfg         config.PipelineConfig
	now         func() time.Time

	mu    sync.Mutex
	views map[uuid.UUID]*view
}

// NewPipelineService creates a new instance of PipelineService.
func NewPipelineService(
	apps storage.ApplicationRepository,
	postings storage.JobPostingRepository,
	drafts storage.DraftStore,
	broadcaster Broadcaster,
	cfg config.PipelineConfig,
) *PipelineViews {
	if broadcaster == nil {
		broadcaster = nopBroadcaster{}
	}
	return &PipelineViews{
		apps:        apps,
		postings:    postings,
		drafts:      drafts,
		broadcaster: broadcaster,
		cfg:         cfg,
		now:         time.Now,
		views:       make(map[uuid.UUID]*view),
	}
}

var _ PipelineService = (*PipelineViews)(nil)

type nopBroadcaster struct{ pipeline.NopNotifier }

func (nopBroadcaster) OpenView(uuid.UUID) {}
func (nopBroadcaster) CloseView(uuid.UUID) {}

// OpenPipeline loads the applications of a job posting into a new view and merges
// the score annotations passed along, if any. Annotations that fail to parse are
// logged and ignored.
func (s *PipelineViews) OpenPipeline(ctx context.Context, req *dto.OpenPipelineRequest) (*dto.PipelineResponse, error) {
	viewID := uuid.New()
	board := pipeline.NewBoard(viewID, s.apps, s.postings, s.broadcaster, pipeline.Options{
		WriteTimeout: s.cfg.WriteTimeout,
		Now:          s.now,
	})
	board.Load(ctx, req.JobID)

	var (
		merge    *pipeline.MergeResult
		scoreErr string
	)
	annotations, err := pipeline.ParseScoreAnnotations(req.Scores)
	if err != nil {
		log.Printf("OpenPipeline: Ignoring score annotations for job %s: %v", req.JobID, err)
		scoreErr = err.Error()
	} else if len(annotations) > 0 {
		res := board.MergeScores(annotations)
		merge = &res
	}

	v := &view{
		board:      board,
		notes:      pipeline.NewNotesEditor(board, s.drafts, s.cfg.DraftTTL),
		ownerID:    req.RecruiterID,
		lastAccess: s.now(),
	}
	s.broadcaster.OpenView(viewID)
	s.mu.Lock()
	s.views[viewID] = v
	s.mu.Unlock()

	log.Printf("OpenPipeline: Recruiter %s opened view %s for job %s", req.RecruiterID, viewID, req.JobID)
	resp := buildPipelineResponse(board)
	resp.Merge = merge
	resp.ScoreError = scoreErr
	return resp, nil
}

// lookup returns the view if it exists and belongs to the recruiter.
func (s *PipelineViews) lookup(req *dto.PipelineViewRequest) (*view, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[req.ViewID]
	if !ok {
		return nil, fmt.Errorf("%w: pipeline view %s", ErrNotFound, req.ViewID)
	}
	if v.ownerID != req.RecruiterID {
		log.Printf("lookup: Forbidden attempt by user %s on pipeline view %s owned by %s", req.RecruiterID, req.ViewID, v.ownerID)
		return nil, ErrForbidden
	}
	v.lastAccess = s.now()
	return v, nil
}

func (s *PipelineViews) GetPipeline(ctx context.Context, req *dto.PipelineViewRequest) (*dto.PipelineResponse, error) {
	v, err := s.lookup(req)
	if err != nil {
		return nil, err
	}
	return buildPipelineResponse(v.board), nil
}

func (s *PipelineViews) ListByStatus(ctx context.Context, req *dto.ListByStatusRequest) ([]models.Application, error) {
	v, err := s.lookup(&req.PipelineViewRequest)
	if err != nil {
		return nil, err
	}
	apps := make([]models.Application, 0)
	for app := range v.board.ByStatus(req.Status) {
		apps = append(apps, app)
	}
	return apps, nil
}

func (s *PipelineViews) MergeScores(ctx context.Context, req *dto.MergeScoresRequest) (pipeline.MergeResult, error) {
	v, err := s.lookup(&req.PipelineViewRequest)
	if err != nil {
		return pipeline.MergeResult{}, err
	}
	annotations := make([]models.ScoreAnnotation, 0, len(req.Annotations))
	for _, a := range req.Annotations {
		annotations = append(annotations, models.ScoreAnnotation{ID: a.ID, Name: a.Name, Score: *a.Score})
	}
	return v.board.MergeScores(annotations), nil
}

// TransitionApplication moves an application to a new status. Unknown
// applications are ignored and reported as not applied, not as an error.
func (s *PipelineViews) TransitionApplication(ctx context.Context, req *dto.TransitionRequest) (pipeline.Outcome, error) {
	v, err := s.lookup(&req.PipelineViewRequest)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	outcome, err := v.board.Transition(ctx, req.ApplicationID, req.Status, req.Notes)
	if err != nil {
		return pipeline.Outcome{}, MapRepoError(err, fmt.Sprintf("moving application %s", req.ApplicationID))
	}
	return outcome, nil
}

func (s *PipelineViews) SetNoteDraft(ctx context.Context, req *dto.SetNoteDraftRequest) error {
	v, err := s.lookup(&req.PipelineViewRequest)
	if err != nil {
		return err
	}
	if err := v.notes.SetDraft(ctx, req.ApplicationID, req.Text); err != nil {
		return MapRepoError(err, fmt.Sprintf("buffering notes for application %s", req.ApplicationID))
	}
	return nil
}

func (s *PipelineViews) CommitNote(ctx context.Context, req *dto.CommitNoteRequest) (pipeline.Outcome, error) {
	v, err := s.lookup(&req.PipelineViewRequest)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	outcome, err := v.notes.CommitOnBlur(ctx, req.ApplicationID)
	if err != nil {
		return outcome, MapRepoError(err, fmt.Sprintf("committing notes for application %s", req.ApplicationID))
	}
	return outcome, nil
}

func (s *PipelineViews) ListMutations(ctx context.Context, req *dto.PipelineViewRequest) ([]models.Mutation, error) {
	v, err := s.lookup(req)
	if err != nil {
		return nil, err
	}
	return v.board.Mutations(), nil
}

// ExportReport writes the current snapshot of the view as an XLSX workbook.
func (s *PipelineViews) ExportReport(ctx context.Context, req *dto.PipelineViewRequest, w io.Writer) error {
	v, err := s.lookup(req)
	if err != nil {
		return err
	}
	report := export.Report{
		Posting:      v.board.Posting(),
		Applications: v.board.Snapshot(),
		GeneratedAt:  s.now(),
	}
	if err := export.WritePipelineReport(w, report); err != nil {
		log.Printf("ExportReport: Error rendering report for view %s: %v", req.ViewID, err)
		return fmt.Errorf("internal error rendering report: %w", err)
	}
	return nil
}

func (s *PipelineViews) AuthorizeView(ctx context.Context, req *dto.PipelineViewRequest) error {
	_, err := s.lookup(req)
	return err
}

// ClosePipeline drops the view, its buffered drafts and its listeners.
// Writes already dispatched still complete.
func (s *PipelineViews) ClosePipeline(ctx context.Context, req *dto.PipelineViewRequest) error {
	v, err := s.lookup(req)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.views, req.ViewID)
	s.mu.Unlock()

	s.release(ctx, req.ViewID, v)
	log.Printf("ClosePipeline: Pipeline view %s closed by %s", req.ViewID, req.RecruiterID)
	return nil
}

func (s *PipelineViews) release(ctx context.Context, viewID uuid.UUID, v *view) {
	snapshot := v.board.Snapshot()
	ids := make([]uuid.UUID, 0, len(snapshot))
	for _, app := range snapshot {
		ids = append(ids, app.ID)
	}
	v.notes.Discard(ctx, ids)
	s.broadcaster.CloseView(viewID)
}

// EvictIdle closes every view not accessed since cfg.ViewTTL and returns how many were closed.
func (s *PipelineViews) EvictIdle(ctx context.Context) int {
	if s.cfg.ViewTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.cfg.ViewTTL)

	s.mu.Lock()
	idle := make(map[uuid.UUID]*view)
	for id, v := range s.views {
		if v.lastAccess.Before(cutoff) {
			idle[id] = v
			delete(s.views, id)
		}
	}
	s.mu.Unlock()

	for id, v := range idle {
		s.release(ctx, id, v)
		log.Printf("EvictIdle: Pipeline view %s evicted after %s idle", id, s.cfg.ViewTTL)
	}
	return len(idle)
}

// CloseAll waits for the writes of every open view and releases them.
func (s *PipelineViews) CloseAll(ctx context.Context) {
	s.mu.Lock()
	open := s.views
	s.views = make(map[uuid.UUID]*view)
	s.mu.Unlock()

	for id, v := range open {
		v.board.Flush()
		s.release(ctx, id, v)
	}
	log.Printf("CloseAll: Closed %d pipeline views", len(open))
}

// RunJanitor evicts idle views every interval until ctx is done.
func (s *PipelineViews) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdle(ctx)
		}
	}
}

func buildPipelineResponse(board *pipeline.Board) *dto.PipelineResponse {
	cols := board.Columns()
	total := 0
	for _, c := range cols {
		total += len(c.Applications)
	}
	resp := &dto.PipelineResponse{
		ViewID:  board.ViewID(),
		JobID:   board.JobID(),
		Posting: board.Posting(),
		Columns: cols,
		Total:   total,
	}
	if err := board.LoadError(); err != nil {
		resp.LoadError = "applications could not be loaded"
	}
	return resp
}
