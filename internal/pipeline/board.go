// Package pipeline implements the recruiter pipeline view: the working set of
// applications for one job posting, the status transitions applied to it, the
// notes editor and the tracking of the remote writes each change triggers.
//
// A Board applies every change locally first and then persists it in the
// background. Failed writes are not rolled back; they are recorded as failed
// mutations and announced through the Notifier.
package pipeline

import (
	"context"
	"iter"
	"log"
	"sync"
	"time"

	"nexustalent/internal/models"
	"nexustalent/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultWriteTimeout = 10 * time.Second

// Options tunes a Board. Zero values fall back to defaults.
type Options struct {
	WriteTimeout time.Duration
	Now          func() time.Time
}

// Board is the pipeline view model for one job posting.
type Board struct {
	viewID   uuid.UUID
	apps     storage.ApplicationRepository
	postings storage.JobPostingRepository
	notifier Notifier

	writeTimeout time.Duration
	now          func() time.Time

	mu        sync.RWMutex
	jobID     uuid.UUID
	posting   *models.JobPosting
	records   []models.Application
	index     map[uuid.UUID]int
	loadErr   error
	mutations []*models.Mutation

	inflight sync.WaitGroup
}

// NewBoard creates an empty Board. Call Load to fill it.
func NewBoard(viewID uuid.UUID, apps storage.ApplicationRepository, postings storage.JobPostingRepository, notifier Notifier, opts Options) *Board {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Board{
		viewID:       viewID,
		apps:         apps,
		postings:     postings,
		notifier:     notifier,
		writeTimeout: opts.WriteTimeout,
		now:          opts.Now,
		index:        make(map[uuid.UUID]int),
	}
}

func (b *Board) ViewID() uuid.UUID { return b.viewID }

// Load replaces the working set with the applications of jobID. The posting and
// the applications are fetched in parallel. A failed application fetch leaves an
// empty working set; the error is kept and exposed through LoadError.
func (b *Board) Load(ctx context.Context, jobID uuid.UUID) {
	var (
		g       errgroup.Group
		posting *models.JobPosting
		apps    []models.Application
		appsErr error
	)

	g.Go(func() error {
		p, err := b.postings.GetByID(ctx, jobID)
		if err != nil {
			log.Printf("Load: Error fetching job posting %s: %v", jobID, err)
			return nil
		}
		posting = p
		return nil
	})
	g.Go(func() error {
		list, err := b.apps.ListByJob(ctx, jobID)
		if err != nil {
			log.Printf("Load: Error fetching applications for job %s, showing an empty pipeline: %v", jobID, err)
			appsErr = err
			return nil
		}
		apps = list
		return nil
	})
	_ = g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.jobID = jobID
	b.posting = posting
	b.loadErr = appsErr
	b.records = make([]models.Application, 0, len(apps))
	b.index = make(map[uuid.UUID]int, len(apps))
	for _, app := range apps {
		if _, dup := b.index[app.ID]; dup {
			continue
		}
		b.index[app.ID] = len(b.records)
		b.records = append(b.records, app)
	}
	log.Printf("Load: Pipeline view %s loaded %d applications for job %s", b.viewID, len(b.records), jobID)
}

func (b *Board) JobID() uuid.UUID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.jobID
}

// Posting returns the job posting shown above the pipeline, or nil if it could not be fetched.
func (b *Board) Posting() *models.JobPosting {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.posting == nil {
		return nil
	}
	p := *b.posting
	return &p
}

// LoadError returns the error that turned the last Load into an empty pipeline.
func (b *Board) LoadError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadErr
}

// Get returns a copy of the application with the given id.
func (b *Board) Get(id uuid.UUID) (models.Application, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i, ok := b.index[id]
	if !ok {
		return models.Application{}, false
	}
	return copyApplication(b.records[i]), true
}

// Snapshot returns copies of every application in insertion order.
func (b *Board) Snapshot() []models.Application {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Application, len(b.records))
	for i, app := range b.records {
		out[i] = copyApplication(app)
	}
	return out
}

// ByStatus yields the applications currently in status, in insertion order.
// The sequence is recomputed from the current state every time it is ranged over.
func (b *Board) ByStatus(status models.Status) iter.Seq[models.Application] {
	return func(yield func(models.Application) bool) {
		for _, app := range b.inStatus(status) {
			if !yield(app) {
				return
			}
		}
	}
}

func (b *Board) inStatus(status models.Status) []models.Application {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []models.Application
	for _, app := range b.records {
		if app.Status == status {
			out = append(out, copyApplication(app))
		}
	}
	return out
}

// Column is one status bucket of the board.
type Column struct {
	Status       models.Status        `json:"status"`
	Terminal     bool                 `json:"terminal"`
	Applications []models.Application `json:"applications"`
}

// Columns groups the whole working set by status, in pipeline order.
func (b *Board) Columns() []Column {
	cols := make([]Column, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		col := Column{Status: status, Terminal: status.Terminal(), Applications: []models.Application{}}
		for app := range b.ByStatus(status) {
			col.Applications = append(col.Applications, app)
		}
		cols = append(cols, col)
	}
	return cols
}

// MergeResult summarizes a score merge.
type MergeResult struct {
	Matched  int `json:"matched"`
	Promoted int `json:"promoted"`
	Appended int `json:"appended"`
}

// MergeScores applies score annotations to the working set. An annotation whose
// name matches a loaded candidate sets that application's score and moves it from
// Recebida to Triagem; one that matches nobody is appended as a synthetic
// application in Triagem. Only loaded applications are matched, so merging the
// same unmatched annotations twice appends them twice.
func (b *Board) MergeScores(annotations []models.ScoreAnnotation) MergeResult {
	var res MergeResult
	if len(annotations) == 0 {
		return res
	}

	b.mu.Lock()
	names := make([]string, len(b.records))
	for i, app := range b.records {
		if !app.Synthetic {
			names[i] = normalizeName(app.Candidate.Name)
		}
	}

	for _, ann := range annotations {
		score := ann.Score
		annName := normalizeName(ann.Name)

		matched := -1
		for i := range names {
			if namesMatch(names[i], annName) {
				matched = i
				break
			}
		}

		if matched >= 0 {
			app := &b.records[matched]
			app.Score = &score
			res.Matched++
			if app.Status == models.StatusRecebida {
				app.Status = models.StatusTriagem
				res.Promoted++
			}
			continue
		}

		synthetic := models.Application{
			ID:              uuid.New(),
			JobPostingID:    b.jobID,
			Status:          models.StatusTriagem,
			ApplicationDate: b.now(),
			Candidate:       models.Candidate{Name: ann.Name},
			Score:           &score,
			Synthetic:       true,
			SourceID:        ann.ID,
		}
		b.index[synthetic.ID] = len(b.records)
		b.records = append(b.records, synthetic)
		names = append(names, "")
		res.Appended++
	}
	b.mu.Unlock()

	log.Printf("MergeScores: Pipeline view %s merged %d annotations (matched %d, promoted %d, appended %d)",
		b.viewID, len(annotations), res.Matched, res.Promoted, res.Appended)
	b.notifier.Notify(models.Notification{
		Kind:    models.NotificationScoresMerged,
		ViewID:  b.viewID,
		Message: mergeMessage(res),
		At:      b.now(),
	})
	return res
}

func copyApplication(app models.Application) models.Application {
	if app.Score != nil {
		s := *app.Score
		app.Score = &s
	}
	return app
}
