package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nexustalent/internal/models"
	"nexustalent/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobPostingRepo implements the storage.JobPostingRepository interface using PostgreSQL.
type JobPostingRepo struct {
	db Querier
}

// NewJobPostingRepo creates a new JobPostingRepo.
func NewJobPostingRepo(db *pgxpool.Pool) *JobPostingRepo {
	return &JobPostingRepo{db: db}
}

var _ storage.JobPostingRepository = (*JobPostingRepo)(nil)

// GetByID retrieves a specific job posting by its ID.
func (r *JobPostingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	query := `
		SELECT id, title, COALESCE(company, ''), COALESCE(location, ''), COALESCE(description, ''), status, created_at
		FROM job_postings
		WHERE id = $1
	`
	var posting models.JobPosting
	err := r.db.QueryRow(ctx, query, id).Scan(
		&posting.ID,
		&posting.Title,
		&posting.Company,
		&posting.Location,
		&posting.Description,
		&posting.Status,
		&posting.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Job posting not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job posting by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job posting by ID %s: %w", id, err)
	}

	return &posting, nil
}
