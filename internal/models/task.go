package models

import "time"

// TaskStatus represents valid background task statuses
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// BackgroundTask is a resumable cursor into one job's recipient list. At most
// one task per job is non-terminal at a time; finishing a batch either creates
// exactly one successor task or leaves none.
type BackgroundTask struct {
	ID             string     `json:"id" db:"id"`
	JobID          string     `json:"job_id" db:"job_id"`
	AnnouncementID string     `json:"announcement_id" db:"announcement_id"`
	Status         TaskStatus `json:"status" db:"status"`
	RemainingCount int        `json:"remaining_count" db:"remaining_count"`
	NextBatchIndex int        `json:"next_batch_index" db:"next_batch_index"`
	ErrorMessage   *string    `json:"error_message,omitempty" db:"error_message"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// IsTerminal checks if the task has reached a final state
func (t *BackgroundTask) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}
