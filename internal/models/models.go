package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Pipeline Status Enum ---
type Status string

const (
	StatusRecebida   Status = "Recebida"
	StatusTriagem    Status = "Triagem"
	StatusTeste      Status = "Teste"
	StatusEntrevista Status = "Entrevista"
	StatusOferta     Status = "Oferta"
	StatusContratado Status = "Contratado"
	StatusRejeitada  Status = "Rejeitada"
)

// Statuses lists every pipeline stage in board column order.
var Statuses = []Status{
	StatusRecebida,
	StatusTriagem,
	StatusTeste,
	StatusEntrevista,
	StatusOferta,
	StatusContratado,
	StatusRejeitada,
}

// Valid reports whether s is one of the pipeline stages.
func (s Status) Valid() bool {
	switch s {
	case StatusRecebida, StatusTriagem, StatusTeste, StatusEntrevista, StatusOferta, StatusContratado, StatusRejeitada:
		return true
	default:
		return false
	}
}

// Terminal reports whether the board offers no further moves out of s.
// Transitions out of a terminal status are still accepted.
func (s Status) Terminal() bool {
	return s == StatusContratado || s == StatusRejeitada
}

// Scan implements the sql.Scanner interface for Status
func (s *Status) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Status: value is not string or []byte")
		}
	}
	v := Status(strVal)
	if !v.Valid() {
		return fmt.Errorf("invalid Status value: %s", strVal)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for Status
func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Mutation State Enum ---
type MutationState string

const (
	MutationPending   MutationState = "pending"
	MutationCommitted MutationState = "committed"
	MutationFailed    MutationState = "failed"
	MutationLocal     MutationState = "local" // synthetic record, nothing to persist
)

type MutationKind string

const (
	MutationKindStatus MutationKind = "status"
	MutationKindNotes  MutationKind = "notes"
)

// Candidate is the display profile joined from the users table.
type Candidate struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// Application is a candidate's submission against one job posting.
type Application struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CandidateID     uuid.UUID `json:"candidate_id" db:"applicant_id"`
	JobPostingID    uuid.UUID `json:"job_posting_id" db:"job_posting_id"`
	Status          Status    `json:"status" db:"status"`
	Notes           string    `json:"notes" db:"notes"`
	ApplicationDate time.Time `json:"application_date" db:"created_at"`
	Candidate       Candidate `json:"candidate"`

	// Score is merged in from an out-of-band annotation and never persisted.
	Score *float64 `json:"score,omitempty"`

	// Synthetic records are appended by a score merge that matched no loaded candidate.
	Synthetic bool   `json:"synthetic,omitempty"`
	SourceID  string `json:"source_id,omitempty"`
}

// JobPosting is the read-only posting shown above the pipeline.
type JobPosting struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Company     string    `json:"company" db:"company"`
	Location    string    `json:"location" db:"location"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ScoreAnnotation is an externally computed compatibility score for a candidate.
type ScoreAnnotation struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Mutation tracks one optimistic change and the fate of its remote write.
type Mutation struct {
	ID            uuid.UUID     `json:"id"`
	ViewID        uuid.UUID     `json:"view_id"`
	ApplicationID uuid.UUID     `json:"application_id"`
	Kind          MutationKind  `json:"kind"`
	State         MutationState `json:"state"`
	Error         string        `json:"error,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type NotificationKind string

const (
	NotificationStatusChanged     NotificationKind = "status_changed"
	NotificationNotesSaved        NotificationKind = "notes_saved"
	NotificationScoresMerged      NotificationKind = "scores_merged"
	NotificationMutationCommitted NotificationKind = "mutation_committed"
	NotificationMutationFailed    NotificationKind = "mutation_failed"
)

// Notification is the user-facing confirmation raised by every pipeline mutation.
type Notification struct {
	Kind          NotificationKind `json:"kind"`
	ViewID        uuid.UUID        `json:"view_id"`
	ApplicationID *uuid.UUID       `json:"application_id,omitempty"`
	CandidateName string           `json:"candidate_name,omitempty"`
	Status        Status           `json:"status,omitempty"`
	MutationID    *uuid.UUID       `json:"mutation_id,omitempty"`
	State         MutationState    `json:"state,omitempty"`
	Message       string           `json:"message"`
	At            time.Time        `json:"at"`
}
