package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tenantcast/internal/models"
	"tenantcast/internal/repository"
	"tenantcast/internal/sender"
)

// DefaultBatchSize is the recipient slice processed per invocation. Bounded
// batches keep each invocation's duration inside external time limits.
const DefaultBatchSize = 50

// BatchService sends one bounded slice of an announcement's recipient list
// and advances (or closes out) the job.
type BatchService struct {
	jobRepo          repository.JobRepository
	taskRepo         repository.TaskRepository
	announcementRepo repository.AnnouncementRepository
	contactRepo      repository.ContactRepository
	sender           sender.Sender
	templateSvc      *TemplateService
	publisher        TaskPublisher
}

// NewBatchService creates a new batch service. publisher may be nil.
func NewBatchService(
	jobRepo repository.JobRepository,
	taskRepo repository.TaskRepository,
	announcementRepo repository.AnnouncementRepository,
	contactRepo repository.ContactRepository,
	snd sender.Sender,
	templateSvc *TemplateService,
	publisher TaskPublisher,
) *BatchService {
	return &BatchService{
		jobRepo:          jobRepo,
		taskRepo:         taskRepo,
		announcementRepo: announcementRepo,
		contactRepo:      contactRepo,
		sender:           snd,
		templateSvc:      templateSvc,
		publisher:        publisher,
	}
}

// SendFailure records one failed (contact, channel) attempt
type SendFailure struct {
	ContactID string        `json:"contact_id"`
	Method    models.Method `json:"method"`
	Recipient string        `json:"recipient"`
	Error     string        `json:"error"`
}

// BatchResult describes the outcome of one batch invocation
type BatchResult struct {
	JobID          string               `json:"job_id"`
	TaskID         string               `json:"task_id"`
	AnnouncementID string               `json:"announcement_id"`
	JobStatus      models.JobStatus     `json:"job_status"`
	IsComplete     bool                 `json:"is_complete"`
	BatchSize      int                  `json:"batch_size"`
	Sent           int                  `json:"sent"`
	Failed         int                  `json:"failed"`
	Remaining      int                  `json:"remaining"`
	TotalProcessed int                  `json:"total_processed"`
	Failures       []SendFailure        `json:"failures,omitempty"`
	Announcement   *models.Announcement `json:"-"`
}

// ProcessBatch pulls the job's current cursor task, sends every configured
// channel to every contact in one bounded slice, records the outcome, and
// either schedules the next slice or finalizes the job.
func (s *BatchService) ProcessBatch(ctx context.Context, jobID string, batchSize int) (*BatchResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, &NotFoundError{Resource: "job", ID: jobID}
	}

	// Reprocessing a finished job is a safe no-op
	if job.IsTerminal() {
		return &BatchResult{
			JobID:          job.ID,
			AnnouncementID: job.AnnouncementID,
			JobStatus:      job.Status,
			IsComplete:     true,
			TotalProcessed: job.ProcessedCount,
		}, nil
	}

	// Every active job must have a cursor task
	task, err := s.taskRepo.GetLatestByJobID(ctx, jobID)
	if err != nil {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("job %s has no background task", jobID),
		}
	}

	announcement, err := s.announcementRepo.GetByID(ctx, job.AnnouncementID)
	if err != nil {
		return nil, &NotFoundError{Resource: "announcement", ID: job.AnnouncementID}
	}

	contacts, err := s.contactRepo.GetForAnnouncement(ctx, announcement.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contacts: %w", err)
	}

	// Nothing to send: complete immediately
	if len(contacts) == 0 {
		if err := s.finalize(ctx, job.ID, announcement.ID, task.ID); err != nil {
			return nil, err
		}
		return &BatchResult{
			JobID:          job.ID,
			TaskID:         task.ID,
			AnnouncementID: announcement.ID,
			JobStatus:      models.JobStatusCompleted,
			IsComplete:     true,
			TotalProcessed: job.ProcessedCount,
			Announcement:   announcement,
		}, nil
	}

	// Compute the slice for this invocation
	total := len(contacts)
	start := task.NextBatchIndex
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + batchSize
	if end > total {
		end = total
	}
	batch := contacts[start:end]
	remaining := total - end

	succeeded := 0
	failures := []SendFailure{}

	for _, contact := range batch {
		for _, method := range announcement.Methods {
			address, ok := contact.Address(method)
			if !ok {
				// Missing address gates the channel off; skipped, not failed
				continue
			}

			if err := s.sendOne(ctx, announcement, contact, method, address); err != nil {
				failures = append(failures, SendFailure{
					ContactID: contact.ID,
					Method:    method,
					Recipient: address,
					Error:     err.Error(),
				})
				continue
			}
			succeeded++
		}
	}

	if len(batch) > 0 {
		lastProcessedID := batch[len(batch)-1].ID
		if err := s.jobRepo.RecordBatch(ctx, job.ID, len(batch), succeeded, len(failures), lastProcessedID); err != nil {
			return nil, fmt.Errorf("failed to record batch: %w", err)
		}
	}

	isComplete := remaining <= 0
	if isComplete {
		if err := s.finalize(ctx, job.ID, announcement.ID, task.ID); err != nil {
			return nil, err
		}
	} else {
		next := &models.BackgroundTask{
			ID:             uuid.NewString(),
			JobID:          job.ID,
			AnnouncementID: announcement.ID,
			Status:         models.TaskStatusPending,
			RemainingCount: remaining,
			NextBatchIndex: end,
		}
		if err := s.taskRepo.Create(ctx, next); err != nil {
			return nil, fmt.Errorf("failed to create next task: %w", err)
		}
		if err := s.taskRepo.MarkCompleted(ctx, task.ID); err != nil {
			return nil, fmt.Errorf("failed to complete current task: %w", err)
		}
		if s.publisher != nil {
			if err := s.publisher.PublishTask(next.ID, job.ID, batchSize); err != nil {
				log.Printf("Warning: failed to publish task %s to queue: %v", next.ID, err)
			}
		}
	}

	status := models.JobStatusProcessing
	if isComplete {
		status = models.JobStatusCompleted
	}

	return &BatchResult{
		JobID:          job.ID,
		TaskID:         task.ID,
		AnnouncementID: announcement.ID,
		JobStatus:      status,
		IsComplete:     isComplete,
		BatchSize:      len(batch),
		Sent:           succeeded,
		Failed:         len(failures),
		Remaining:      remaining,
		TotalProcessed: job.ProcessedCount + len(batch),
		Failures:       failures,
		Announcement:   announcement,
	}, nil
}

// sendOne attempts one (contact, channel) delivery. A transport failure is
// returned, never allowed to abort the batch.
func (s *BatchService) sendOne(ctx context.Context, announcement *models.Announcement, contact *models.TenantContact, method models.Method, address string) error {
	switch method {
	case models.MethodEmail:
		body, err := s.templateSvc.Render(announcement.Content, contact)
		if err != nil {
			return err
		}
		_, err = s.sender.SendEmail(ctx, address, announcement.Title, body)
		return err

	case models.MethodSMS:
		body, err := s.templateSvc.Render(announcement.Content, contact)
		if err != nil {
			return err
		}
		_, err = s.sender.SendSMS(ctx, address, body)
		return err

	case models.MethodWhatsApp:
		template, parameters := s.templateSvc.WhatsAppTemplate(announcement)
		_, err := s.sender.SendWhatsApp(ctx, address, template, parameters)
		return err
	}

	return fmt.Errorf("unsupported method: %s", method)
}

// finalize flips job, announcement and task to their terminal send states
func (s *BatchService) finalize(ctx context.Context, jobID, announcementID, taskID string) error {
	if err := s.jobRepo.MarkCompleted(ctx, jobID); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	if err := s.announcementRepo.UpdateStatus(ctx, announcementID, models.AnnouncementStatusSent); err != nil {
		return fmt.Errorf("failed to mark announcement sent: %w", err)
	}
	if err := s.taskRepo.MarkCompleted(ctx, taskID); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return nil
}
