package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tenantcast/internal/models"
)

type scheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Create creates a new announcement schedule
func (r *scheduleRepository) Create(ctx context.Context, schedule *models.AnnouncementSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}

	query := `
		INSERT INTO announcement_schedules (id, announcement_id, next_run_at, frequency)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		schedule.ID,
		schedule.AnnouncementID,
		schedule.NextRunAt,
		schedule.Frequency,
	).Scan(&schedule.CreatedAt, &schedule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	return nil
}

// GetByID retrieves a schedule by ID
func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*models.AnnouncementSchedule, error) {
	query := `
		SELECT id, announcement_id, next_run_at, frequency, created_at, updated_at
		FROM announcement_schedules
		WHERE id = $1
	`

	schedule := &models.AnnouncementSchedule{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.AnnouncementID,
		&schedule.NextRunAt,
		&schedule.Frequency,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("schedule not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return schedule, nil
}

// GetDue retrieves due schedules whose announcement is still scheduled,
// oldest next-run first, capped at limit
func (r *scheduleRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*models.AnnouncementSchedule, error) {
	query := `
		SELECT s.id, s.announcement_id, s.next_run_at, s.frequency, s.created_at, s.updated_at
		FROM announcement_schedules s
		JOIN announcements a ON s.announcement_id = a.id
		WHERE s.next_run_at IS NOT NULL
		  AND s.next_run_at <= $1
		  AND a.status = 'scheduled'
		ORDER BY s.next_run_at ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due schedules: %w", err)
	}
	defer rows.Close()

	schedules := []*models.AnnouncementSchedule{}
	for rows.Next() {
		schedule := &models.AnnouncementSchedule{}
		err := rows.Scan(
			&schedule.ID,
			&schedule.AnnouncementID,
			&schedule.NextRunAt,
			&schedule.Frequency,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	return schedules, nil
}

// UpdateNextRun advances (or clears, for fire-once schedules) the next run time
func (r *scheduleRepository) UpdateNextRun(ctx context.Context, id string, nextRun *time.Time) error {
	query := `
		UPDATE announcement_schedules
		SET next_run_at = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, nextRun, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule next run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}
