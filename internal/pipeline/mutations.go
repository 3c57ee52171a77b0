package pipeline

import (
	"context"
	"log"

	"nexustalent/internal/models"

	"github.com/google/uuid"
)

// beginMutation records a new mutation. Callers must hold b.mu.
func (b *Board) beginMutation(app models.Application, kind models.MutationKind) *models.Mutation {
	now := b.now()
	m := &models.Mutation{
		ID:            uuid.New(),
		ViewID:        b.viewID,
		ApplicationID: app.ID,
		Kind:          kind,
		State:         models.MutationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Synthetic records have no row to write to.
	if app.Synthetic {
		m.State = models.MutationLocal
	}
	b.mutations = append(b.mutations, m)
	return m
}

// dispatch runs write in the background and settles the mutation with its result.
// The request context's cancellation is detached so the write outlives the request.
func (b *Board) dispatch(ctx context.Context, m models.Mutation, candidate string, write func(ctx context.Context) error) {
	if m.State != models.MutationPending {
		return
	}

	writeCtx := context.WithoutCancel(ctx)
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()

		ctx, cancel := context.WithTimeout(writeCtx, b.writeTimeout)
		defer cancel()

		err := write(ctx)
		settled := b.settleMutation(m.ID, err)
		if err != nil {
			log.Printf("dispatch: Remote %s write for application %s failed: %v", m.Kind, m.ApplicationID, err)
		}

		kind := models.NotificationMutationCommitted
		if settled.State == models.MutationFailed {
			kind = models.NotificationMutationFailed
		}
		appID, mutationID := settled.ApplicationID, settled.ID
		b.notifier.Notify(models.Notification{
			Kind:          kind,
			ViewID:        b.viewID,
			ApplicationID: &appID,
			CandidateName: candidate,
			MutationID:    &mutationID,
			State:         settled.State,
			Message:       mutationMessage(settled, candidate),
			At:            b.now(),
		})
	}()
}

func (b *Board) settleMutation(id uuid.UUID, err error) models.Mutation {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range b.mutations {
		if m.ID != id {
			continue
		}
		m.UpdatedAt = b.now()
		if err != nil {
			m.State = models.MutationFailed
			m.Error = err.Error()
		} else {
			m.State = models.MutationCommitted
		}
		return *m
	}
	return models.Mutation{ID: id}
}

// Mutations returns every mutation of the view, oldest first.
func (b *Board) Mutations() []models.Mutation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Mutation, len(b.mutations))
	for i, m := range b.mutations {
		out[i] = *m
	}
	return out
}

// Flush blocks until every dispatched write has settled.
func (b *Board) Flush() {
	b.inflight.Wait()
}
