package repository

import (
	"context"
	"database/sql"
	"time"

	"tenantcast/internal/models"
)

// AnnouncementRepository defines announcement data access operations
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	List(ctx context.Context, filters AnnouncementFilters) ([]*models.Announcement, int, error)
	UpdateStatus(ctx context.Context, id string, status models.AnnouncementStatus) error
}

// AnnouncementFilters defines filters for listing announcements
type AnnouncementFilters struct {
	Page     int
	PageSize int
	Status   *models.AnnouncementStatus
	Type     *models.AnnouncementType
}

// ScheduleRepository defines recurrence schedule data access operations
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.AnnouncementSchedule) error
	GetByID(ctx context.Context, id string) (*models.AnnouncementSchedule, error)
	// GetDue returns schedules whose next run is at or before now and whose
	// announcement is still in scheduled state, oldest next-run first.
	GetDue(ctx context.Context, now time.Time, limit int) ([]*models.AnnouncementSchedule, error)
	UpdateNextRun(ctx context.Context, id string, nextRun *time.Time) error
}

// JobRepository defines announcement job data access operations
type JobRepository interface {
	Create(ctx context.Context, job *models.AnnouncementJob) error
	GetByID(ctx context.Context, id string) (*models.AnnouncementJob, error)
	// RecordBatch adds one batch's outcome to the job counters. Counters only
	// grow; the update is additive so batches never overwrite each other.
	RecordBatch(ctx context.Context, id string, processed, succeeded, failed int, lastProcessedID string) error
	MarkCompleted(ctx context.Context, id string) error
}

// TaskRepository defines background task data access operations
type TaskRepository interface {
	// Create inserts a task. Insertion is idempotent on (job_id,
	// next_batch_index): re-creating the same cursor after a crash is a no-op.
	Create(ctx context.Context, task *models.BackgroundTask) error
	GetLatestByJobID(ctx context.Context, jobID string) (*models.BackgroundTask, error)
	GetPending(ctx context.Context, limit int) ([]*models.BackgroundTask, error)
	// Claim flips a pending task to processing. Returns false if another
	// scanner run claimed it first.
	Claim(ctx context.Context, id string) (bool, error)
	MarkCompleted(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errorMessage string) error
}

// ContactRepository resolves the de-duplicated recipient list for an announcement
type ContactRepository interface {
	GetForAnnouncement(ctx context.Context, announcementID string) ([]*models.TenantContact, error)
}

// DB is a wrapper around *sql.DB to allow passing in transaction
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
