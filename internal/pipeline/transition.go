package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nexustalent/internal/models"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid pipeline status")

// Outcome describes what a transition or notes commit did to the working set.
// Applied is false when the call was a no-op.
type Outcome struct {
	Applied     bool                `json:"applied"`
	Application *models.Application `json:"application,omitempty"`
	Mutation    *models.Mutation    `json:"mutation,omitempty"`
}

// Transition moves an application to newStatus and, when notes is non-nil,
// overwrites its notes. Any status is reachable from any other, terminal ones
// included. An unknown id is a silent no-op, as is moving to the current status
// without notes. The change is applied locally before the remote write is dispatched.
func (b *Board) Transition(ctx context.Context, applicationID uuid.UUID, newStatus models.Status, notes *string) (Outcome, error) {
	if !newStatus.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	b.mu.Lock()
	i, ok := b.index[applicationID]
	if !ok {
		b.mu.Unlock()
		log.Printf("Transition: Application %s is not in pipeline view %s, ignoring", applicationID, b.viewID)
		return Outcome{}, nil
	}
	app := &b.records[i]
	if app.Status == newStatus && notes == nil {
		b.mu.Unlock()
		return Outcome{}, nil
	}

	app.Status = newStatus
	if notes != nil {
		app.Notes = *notes
	}
	m := b.beginMutation(*app, models.MutationKindStatus)
	updated, mutation := copyApplication(*app), *m
	b.mu.Unlock()

	log.Printf("Transition: Application %s moved to %s in pipeline view %s", applicationID, newStatus, b.viewID)
	b.notifier.Notify(models.Notification{
		Kind:          models.NotificationStatusChanged,
		ViewID:        b.viewID,
		ApplicationID: &updated.ID,
		CandidateName: updated.Candidate.Name,
		Status:        newStatus,
		MutationID:    &mutation.ID,
		State:         mutation.State,
		Message:       statusMessage(updated.Candidate.Name, newStatus),
		At:            b.now(),
	})

	var notesCopy *string
	if notes != nil {
		n := *notes
		notesCopy = &n
	}
	b.dispatch(ctx, mutation, updated.Candidate.Name, func(ctx context.Context) error {
		return b.apps.UpdateStatus(ctx, applicationID, newStatus, notesCopy)
	})

	return Outcome{Applied: true, Application: &updated, Mutation: &mutation}, nil
}

// CommittedNotes returns the notes last committed for an application.
func (b *Board) CommittedNotes(applicationID uuid.UUID) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i, ok := b.index[applicationID]
	if !ok {
		return "", false
	}
	return b.records[i].Notes, true
}

// UpdateNotes overwrites the notes of an application without touching its status.
// Unknown ids are a silent no-op.
func (b *Board) UpdateNotes(ctx context.Context, applicationID uuid.UUID, notes string) Outcome {
	b.mu.Lock()
	i, ok := b.index[applicationID]
	if !ok {
		b.mu.Unlock()
		log.Printf("UpdateNotes: Application %s is not in pipeline view %s, ignoring", applicationID, b.viewID)
		return Outcome{}
	}
	app := &b.records[i]
	app.Notes = notes
	m := b.beginMutation(*app, models.MutationKindNotes)
	updated, mutation := copyApplication(*app), *m
	b.mu.Unlock()

	b.notifier.Notify(models.Notification{
		Kind:          models.NotificationNotesSaved,
		ViewID:        b.viewID,
		ApplicationID: &updated.ID,
		CandidateName: updated.Candidate.Name,
		Status:        updated.Status,
		MutationID:    &mutation.ID,
		State:         mutation.State,
		Message:       notesMessage(updated.Candidate.Name),
		At:            b.now(),
	})

	b.dispatch(ctx, mutation, updated.Candidate.Name, func(ctx context.Context) error {
		return b.apps.UpdateNotes(ctx, applicationID, notes)
	})

	return Outcome{Applied: true, Application: &updated, Mutation: &mutation}
}
