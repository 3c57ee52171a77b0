package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"nexustalent/internal/storage"

	"github.com/google/uuid"
)

// NotesEditor buffers free-text notes per application and commits them when the
// field loses focus. Two recruiters editing the same application are not
// reconciled: the last commit wins.
type NotesEditor struct {
	board  *Board
	drafts storage.DraftStore
	ttl    time.Duration
}

// NewNotesEditor creates a NotesEditor for the board. ttl bounds how long an
// uncommitted draft is kept; zero keeps it until the view is closed.
func NewNotesEditor(board *Board, drafts storage.DraftStore, ttl time.Duration) *NotesEditor {
	return &NotesEditor{board: board, drafts: drafts, ttl: ttl}
}

// SetDraft replaces the buffered text. Nothing is persisted. Drafts for
// applications outside the view are dropped.
func (e *NotesEditor) SetDraft(ctx context.Context, applicationID uuid.UUID, text string) error {
	if _, ok := e.board.Get(applicationID); !ok {
		log.Printf("SetDraft: Application %s is not in pipeline view %s, ignoring", applicationID, e.board.ViewID())
		return nil
	}
	return e.drafts.Set(ctx, e.board.ViewID(), applicationID, text, e.ttl)
}

// CommitOnBlur commits the buffered text if it differs from the last committed
// notes. Without a draft, or with an unchanged one, no write happens.
func (e *NotesEditor) CommitOnBlur(ctx context.Context, applicationID uuid.UUID) (Outcome, error) {
	viewID := e.board.ViewID()

	draft, err := e.drafts.Get(ctx, viewID, applicationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Outcome{}, nil
		}
		return Outcome{}, fmt.Errorf("failed to read notes draft: %w", err)
	}

	committed, ok := e.board.CommittedNotes(applicationID)
	if !ok || draft == committed {
		return Outcome{}, nil
	}

	outcome := e.board.UpdateNotes(ctx, applicationID, draft)
	if err := e.drafts.Delete(ctx, viewID, applicationID); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// Discard drops every buffered draft for the given applications.
func (e *NotesEditor) Discard(ctx context.Context, applicationIDs []uuid.UUID) {
	for _, id := range applicationIDs {
		_ = e.drafts.Delete(ctx, e.board.ViewID(), id)
	}
}
