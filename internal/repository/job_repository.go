package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tenantcast/internal/models"
)

type jobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new announcement job repository
func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create creates a new announcement job
func (r *jobRepository) Create(ctx context.Context, job *models.AnnouncementJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	query := `
		INSERT INTO announcement_jobs (id, announcement_id, status)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		job.ID,
		job.AnnouncementID,
		job.Status,
	).Scan(&job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *jobRepository) GetByID(ctx context.Context, id string) (*models.AnnouncementJob, error) {
	query := `
		SELECT id, announcement_id, status, processed_count, success_count, failure_count,
		       last_processed_id, completed_at, created_at, updated_at
		FROM announcement_jobs
		WHERE id = $1
	`

	job := &models.AnnouncementJob{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID,
		&job.AnnouncementID,
		&job.Status,
		&job.ProcessedCount,
		&job.SuccessCount,
		&job.FailureCount,
		&job.LastProcessedID,
		&job.CompletedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// RecordBatch adds one batch's counts to the job. The update is additive so
// an earlier batch is never overwritten by a later one.
func (r *jobRepository) RecordBatch(ctx context.Context, id string, processed, succeeded, failed int, lastProcessedID string) error {
	query := `
		UPDATE announcement_jobs
		SET processed_count = processed_count + $1,
			success_count = success_count + $2,
			failure_count = failure_count + $3,
			last_processed_id = $4,
			status = 'processing',
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND status NOT IN ('completed', 'cancelled')
	`

	result, err := r.db.ExecContext(ctx, query, processed, succeeded, failed, lastProcessedID, id)
	if err != nil {
		return fmt.Errorf("failed to record batch: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("job not found or already finished")
	}

	return nil
}

// MarkCompleted finishes the job with a completion timestamp
func (r *jobRepository) MarkCompleted(ctx context.Context, id string) error {
	query := `
		UPDATE announcement_jobs
		SET status = 'completed', completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status <> 'cancelled'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("job not found")
	}

	return nil
}
