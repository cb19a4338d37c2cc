package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tenantcast/internal/models"
	"tenantcast/internal/repository"
)

// TaskPublisher hands a background task to the queue for asynchronous
// processing. Publishing is best effort: a lost publish only delays the task
// until the schedule scanner's pending-task scan picks it up.
type TaskPublisher interface {
	PublishTask(taskID, jobID string, batchSize int) error
}

// SendService kicks off a full announcement send: one job plus the initial
// cursor task.
type SendService struct {
	announcementRepo repository.AnnouncementRepository
	jobRepo          repository.JobRepository
	taskRepo         repository.TaskRepository
	contactRepo      repository.ContactRepository
	publisher        TaskPublisher
	batchSize        int
}

// NewSendService creates a new send service. publisher may be nil when no
// queue is attached; the scanner will then drive all batches.
func NewSendService(
	announcementRepo repository.AnnouncementRepository,
	jobRepo repository.JobRepository,
	taskRepo repository.TaskRepository,
	contactRepo repository.ContactRepository,
	publisher TaskPublisher,
	batchSize int,
) *SendService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SendService{
		announcementRepo: announcementRepo,
		jobRepo:          jobRepo,
		taskRepo:         taskRepo,
		contactRepo:      contactRepo,
		publisher:        publisher,
		batchSize:        batchSize,
	}
}

// StartSendResult represents the result of kicking off a send
type StartSendResult struct {
	AnnouncementID string                    `json:"announcement_id"`
	JobID          string                    `json:"job_id"`
	TaskID         string                    `json:"task_id"`
	RecipientCount int                       `json:"recipient_count"`
	Status         models.AnnouncementStatus `json:"status"`
}

// StartSend creates the job and initial background task for an announcement
func (s *SendService) StartSend(ctx context.Context, announcementID string) (*StartSendResult, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		return nil, &NotFoundError{Resource: "announcement", ID: announcementID}
	}

	if !announcement.CanSend() {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("announcement cannot be sent: status is %s", announcement.Status),
		}
	}

	// Resolve contacts up front so the initial task carries the full
	// remaining count
	contacts, err := s.contactRepo.GetForAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contacts: %w", err)
	}

	if err := s.announcementRepo.UpdateStatus(ctx, announcementID, models.AnnouncementStatusSending); err != nil {
		return nil, fmt.Errorf("failed to update announcement status: %w", err)
	}

	job := &models.AnnouncementJob{
		ID:             uuid.NewString(),
		AnnouncementID: announcementID,
		Status:         models.JobStatusPending,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	task := &models.BackgroundTask{
		ID:             uuid.NewString(),
		JobID:          job.ID,
		AnnouncementID: announcementID,
		Status:         models.TaskStatusPending,
		RemainingCount: len(contacts),
		NextBatchIndex: 0,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create initial task: %w", err)
	}

	// Publish outside any transaction; the pending-task scan recovers lost
	// publishes
	if s.publisher != nil {
		if err := s.publisher.PublishTask(task.ID, job.ID, s.batchSize); err != nil {
			log.Printf("Warning: failed to publish task %s to queue: %v", task.ID, err)
		}
	}

	return &StartSendResult{
		AnnouncementID: announcementID,
		JobID:          job.ID,
		TaskID:         task.ID,
		RecipientCount: len(contacts),
		Status:         models.AnnouncementStatusSending,
	}, nil
}
