package repository

import (
	"context"

	"ade-insurance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobRepository handles database operations for analysis jobs
type JobRepository struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new analysis job
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO analysis_jobs (id, document_id, status, progress)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		job.ID,
		job.DocumentID,
		job.Status,
		job.Progress,
	).Scan(&job.CreatedAt)
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job := &models.Job{}
	query := `
		SELECT id, document_id, status, progress, error_message, created_at, completed_at
		FROM analysis_jobs
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.DocumentID,
		&job.Status,
		&job.Progress,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetByDocumentID retrieves the most recent job for a document
func (r *JobRepository) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*models.Job, error) {
	job := &models.Job{}
	query := `
		SELECT id, document_id, status, progress, error_message, created_at, completed_at
		FROM analysis_jobs
		WHERE document_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.QueryRow(ctx, query, documentID).Scan(
		&job.ID,
		&job.DocumentID,
		&job.Status,
		&job.Progress,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateStatus updates a job's status
func (r *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	query := `UPDATE analysis_jobs SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

// UpdateProgress updates a job's completion percentage
func (r *JobRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error {
	query := `UPDATE analysis_jobs SET progress = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, progress, id)
	return err
}

// Complete marks a job as completed
func (r *JobRepository) Complete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE analysis_jobs
		SET status = $1, progress = 100, completed_at = NOW()
		WHERE id = $2`
	_, err := r.db.Exec(ctx, query, models.JobStatusCompleted, id)
	return err
}

// Fail marks a job as failed with an error message
func (r *JobRepository) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `
		UPDATE analysis_jobs
		SET status = $1, error_message = $2, completed_at = NOW()
		WHERE id = $3`
	_, err := r.db.Exec(ctx, query, models.JobStatusFailed, errorMessage, id)
	return err
}
