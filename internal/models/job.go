package models

import "time"

// JobStatus represents valid announcement job statuses
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// AnnouncementJob represents one full-send execution for an announcement.
// Counters are only ever incremented, one batch at a time.
type AnnouncementJob struct {
	ID              string     `json:"id" db:"id"`
	AnnouncementID  string     `json:"announcement_id" db:"announcement_id"`
	Status          JobStatus  `json:"status" db:"status"`
	ProcessedCount  int        `json:"processed_count" db:"processed_count"`
	SuccessCount    int        `json:"success_count" db:"success_count"`
	FailureCount    int        `json:"failure_count" db:"failure_count"`
	LastProcessedID *string    `json:"last_processed_id,omitempty" db:"last_processed_id"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IsTerminal checks if the job has reached a final state
func (j *AnnouncementJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusCancelled
}
