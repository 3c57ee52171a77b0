package pipeline

import (
	"fmt"

	"nexustalent/internal/models"
)

// Notifier receives the user-facing confirmations raised by a Board.
// Notify is called without any Board lock held.
type Notifier interface {
	Notify(n models.Notification)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(models.Notification) {}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n models.Notification)

func (f NotifierFunc) Notify(n models.Notification) { f(n) }

func statusMessage(candidate string, status models.Status) string {
	return fmt.Sprintf("%s movido para %s", displayName(candidate), status)
}

func notesMessage(candidate string) string {
	return fmt.Sprintf("Notas salvas para %s", displayName(candidate))
}

func mergeMessage(res MergeResult) string {
	return fmt.Sprintf("Pontuações aplicadas: %d candidatos atualizados, %d adicionados", res.Matched, res.Appended)
}

func mutationMessage(m models.Mutation, candidate string) string {
	if m.State == models.MutationFailed {
		return fmt.Sprintf("Falha ao salvar alteração de %s: %s", displayName(candidate), m.Error)
	}
	return fmt.Sprintf("Alteração de %s salva", displayName(candidate))
}

func displayName(name string) string {
	if name == "" {
		return "Candidato"
	}
	return name
}
