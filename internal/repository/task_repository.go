package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tenantcast/internal/models"
)

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new background task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create inserts a task. The insert is keyed on (job_id, next_batch_index) so
// replaying a batch commit after a crash does not create a duplicate cursor.
func (r *taskRepository) Create(ctx context.Context, task *models.BackgroundTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	query := `
		INSERT INTO announcement_background_tasks
			(id, job_id, announcement_id, status, remaining_count, next_batch_index)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (job_id, next_batch_index) DO NOTHING
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.JobID,
		task.AnnouncementID,
		task.Status,
		task.RemainingCount,
		task.NextBatchIndex,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetLatestByJobID retrieves the most recently created task for a job
func (r *taskRepository) GetLatestByJobID(ctx context.Context, jobID string) (*models.BackgroundTask, error) {
	query := `
		SELECT id, job_id, announcement_id, status, remaining_count, next_batch_index,
		       error_message, created_at, completed_at
		FROM announcement_background_tasks
		WHERE job_id = $1
		ORDER BY created_at DESC, next_batch_index DESC
		LIMIT 1
	`

	task := &models.BackgroundTask{}
	err := r.db.QueryRowContext(ctx, query, jobID).Scan(
		&task.ID,
		&task.JobID,
		&task.AnnouncementID,
		&task.Status,
		&task.RemainingCount,
		&task.NextBatchIndex,
		&task.ErrorMessage,
		&task.CreatedAt,
		&task.CompletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// GetPending retrieves pending tasks, oldest-created first, capped at limit
func (r *taskRepository) GetPending(ctx context.Context, limit int) ([]*models.BackgroundTask, error) {
	query := `
		SELECT id, job_id, announcement_id, status, remaining_count, next_batch_index,
		       error_message, created_at, completed_at
		FROM announcement_background_tasks
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.BackgroundTask{}
	for rows.Next() {
		task := &models.BackgroundTask{}
		err := rows.Scan(
			&task.ID,
			&task.JobID,
			&task.AnnouncementID,
			&task.Status,
			&task.RemainingCount,
			&task.NextBatchIndex,
			&task.ErrorMessage,
			&task.CreatedAt,
			&task.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Claim atomically flips a pending task to processing. The WHERE clause on
// status is the lock: two concurrent scanner runs racing on the same task both
// execute the update but only one sees an affected row.
func (r *taskRepository) Claim(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE announcement_background_tasks
		SET status = 'processing'
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to claim task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows == 1, nil
}

// MarkCompleted finishes the task with a completion timestamp
func (r *taskRepository) MarkCompleted(ctx context.Context, id string) error {
	query := `
		UPDATE announcement_background_tasks
		SET status = 'completed', completed_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark task completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}

// MarkFailed finishes the task with the captured error. Failed tasks are not
// retried automatically; they stay visible for operator inspection.
func (r *taskRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	query := `
		UPDATE announcement_background_tasks
		SET status = 'failed', error_message = $1, completed_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to mark task failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}
