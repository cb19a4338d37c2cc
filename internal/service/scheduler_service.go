package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tenantcast/internal/repository"
)

// MaxTasksPerRun caps how many due schedules and pending tasks one scan
// advances. The cap keeps each invocation's cost predictable no matter how
// much work has accumulated.
const MaxTasksPerRun = 5

// SchedulerService is the periodic entry point that advances two independent
// streams of due work: schedules ready to fire and background tasks waiting
// for a batch.
type SchedulerService struct {
	scheduleRepo repository.ScheduleRepository
	taskRepo     repository.TaskRepository
	sendSvc      *SendService
	batchSvc     *BatchService
	maxTasks     int
	batchSize    int
	now          func() time.Time
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(
	scheduleRepo repository.ScheduleRepository,
	taskRepo repository.TaskRepository,
	sendSvc *SendService,
	batchSvc *BatchService,
	maxTasks int,
	batchSize int,
) *SchedulerService {
	if maxTasks <= 0 {
		maxTasks = MaxTasksPerRun
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SchedulerService{
		scheduleRepo: scheduleRepo,
		taskRepo:     taskRepo,
		sendSvc:      sendSvc,
		batchSvc:     batchSvc,
		maxTasks:     maxTasks,
		batchSize:    batchSize,
		now:          time.Now,
	}
}

// ItemOutcome records one scanned item's result
type ItemOutcome struct {
	ID             string `json:"id"`
	AnnouncementID string `json:"announcement_id,omitempty"`
	JobID          string `json:"job_id,omitempty"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}

// ScanSummary summarizes one of the two scans
type ScanSummary struct {
	Processed int           `json:"processed"`
	Details   []ItemOutcome `json:"details"`
}

// ScheduleCheckResult is the summary of one scheduler run
type ScheduleCheckResult struct {
	ScheduledAnnouncements ScanSummary `json:"scheduled_announcements"`
	BackgroundTasks        ScanSummary `json:"background_tasks"`
}

// RunScheduleCheck performs the due-schedule scan and the pending-task scan
// concurrently. Per-item failures are recorded in the result and never stop
// sibling items; a scan-level fetch failure aborts the whole run.
func (s *SchedulerService) RunScheduleCheck(ctx context.Context) (*ScheduleCheckResult, error) {
	var (
		wg           sync.WaitGroup
		schedSummary ScanSummary
		taskSummary  ScanSummary
		schedErr     error
		taskErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		schedSummary, schedErr = s.scanDueSchedules(ctx)
	}()
	go func() {
		defer wg.Done()
		taskSummary, taskErr = s.scanPendingTasks(ctx)
	}()
	wg.Wait()

	if schedErr != nil {
		return nil, fmt.Errorf("schedule scan failed: %w", schedErr)
	}
	if taskErr != nil {
		return nil, fmt.Errorf("task scan failed: %w", taskErr)
	}

	return &ScheduleCheckResult{
		ScheduledAnnouncements: schedSummary,
		BackgroundTasks:        taskSummary,
	}, nil
}

// scanDueSchedules kicks off sends for due schedules and advances their next
// run times
func (s *SchedulerService) scanDueSchedules(ctx context.Context) (ScanSummary, error) {
	summary := ScanSummary{Details: []ItemOutcome{}}

	schedules, err := s.scheduleRepo.GetDue(ctx, s.now(), s.maxTasks)
	if err != nil {
		return summary, err
	}

	for _, schedule := range schedules {
		outcome := ItemOutcome{
			ID:             schedule.ID,
			AnnouncementID: schedule.AnnouncementID,
		}

		result, err := s.sendSvc.StartSend(ctx, schedule.AnnouncementID)
		if err != nil {
			outcome.Status = "failed"
			outcome.Error = err.Error()
			summary.Details = append(summary.Details, outcome)
			continue
		}
		outcome.JobID = result.JobID

		// Advance from the stored next-run, not from now, so recurring
		// schedules keep their original cadence. Fire-once schedules are
		// cleared.
		if err := s.scheduleRepo.UpdateNextRun(ctx, schedule.ID, schedule.NextOccurrence()); err != nil {
			outcome.Status = "failed"
			outcome.Error = err.Error()
			summary.Details = append(summary.Details, outcome)
			continue
		}

		outcome.Status = "triggered"
		summary.Details = append(summary.Details, outcome)
		summary.Processed++
	}

	return summary, nil
}

// scanPendingTasks claims and processes pending background tasks, oldest
// first
func (s *SchedulerService) scanPendingTasks(ctx context.Context) (ScanSummary, error) {
	summary := ScanSummary{Details: []ItemOutcome{}}

	tasks, err := s.taskRepo.GetPending(ctx, s.maxTasks)
	if err != nil {
		return summary, err
	}

	for _, task := range tasks {
		outcome := ItemOutcome{
			ID:             task.ID,
			AnnouncementID: task.AnnouncementID,
			JobID:          task.JobID,
		}

		claimed, err := s.taskRepo.Claim(ctx, task.ID)
		if err != nil {
			outcome.Status = "failed"
			outcome.Error = err.Error()
			summary.Details = append(summary.Details, outcome)
			continue
		}
		if !claimed {
			// Another scanner run got there first
			outcome.Status = "skipped"
			summary.Details = append(summary.Details, outcome)
			continue
		}

		if _, err := s.batchSvc.ProcessBatch(ctx, task.JobID, s.batchSize); err != nil {
			outcome.Status = "failed"
			outcome.Error = err.Error()
			// Terminal: failed tasks wait for operator inspection, not a
			// silent retry loop
			if markErr := s.taskRepo.MarkFailed(ctx, task.ID, err.Error()); markErr != nil {
				outcome.Error = fmt.Sprintf("%s (mark failed: %s)", err.Error(), markErr.Error())
			}
			summary.Details = append(summary.Details, outcome)
			continue
		}

		outcome.Status = "processed"
		summary.Details = append(summary.Details, outcome)
		summary.Processed++
	}

	return summary, nil
}
