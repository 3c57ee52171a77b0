package postgres

import (
	"context"
	"fmt"
	"log"

	"nexustalent/internal/models"
	"nexustalent/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

const listApplicationsByJobQuery = `
	SELECT a.id, a.applicant_id, a.job_posting_id, a.status, COALESCE(a.notes, ''), a.created_at,
	       COALESCE(u.full_name, ''), COALESCE(u.avatar_url, ''), COALESCE(u.bio, '')
	FROM applications a
	LEFT JOIN users u ON u.id = a.applicant_id
	WHERE a.job_posting_id = $1
	ORDER BY a.created_at ASC, a.id ASC
`

// ListByJob returns every application for a job posting in the order they were received.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	rows, err := r.db.Query(ctx, listApplicationsByJobQuery, jobID)
	if err != nil {
		log.Printf("Error querying applications for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to list applications for job %s: %w", jobID, err)
	}
	defer rows.Close()

	apps := make([]models.Application, 0)
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(
			&app.ID,
			&app.CandidateID,
			&app.JobPostingID,
			&app.Status,
			&app.Notes,
			&app.ApplicationDate,
			&app.Candidate.Name,
			&app.Candidate.AvatarURL,
			&app.Candidate.Bio,
		); err != nil {
			log.Printf("Error scanning application row for job %s: %v\n", jobID, err)
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications for job %s: %w", jobID, err)
	}

	return apps, nil
}

// UpdateStatus overwrites the status of an application, and its notes when notes is non-nil.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, notes *string) error {
	var (
		query string
		args  []any
	)
	if notes != nil {
		query = `UPDATE applications SET status = $2, notes = $3, updated_at = NOW() WHERE id = $1`
		args = []any{id, status, *notes}
	} else {
		query = `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`
		args = []any{id, status}
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		log.Printf("Error updating status for application %s: %v\n", id, err)
		return mapWriteError(err, "failed to update application status")
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Application not found for status update with ID: %s\n", id)
		return storage.ErrNotFound
	}
	return nil
}

// UpdateNotes overwrites the recruiter notes of an application.
func (r *ApplicationRepo) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	tag, err := r.db.Exec(ctx, `UPDATE applications SET notes = $2, updated_at = NOW() WHERE id = $1`, id, notes)
	if err != nil {
		log.Printf("Error updating notes for application %s: %v\n", id, err)
		return mapWriteError(err, "failed to update application notes")
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Application not found for notes update with ID: %s\n", id)
		return storage.ErrNotFound
	}
	return nil
}
