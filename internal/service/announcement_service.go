package service

import (
	"context"
	"fmt"
	"time"

	"tenantcast/internal/models"
	"tenantcast/internal/repository"
)

// AnnouncementService handles announcement business logic
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
	scheduleRepo     repository.ScheduleRepository
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(
	announcementRepo repository.AnnouncementRepository,
	scheduleRepo repository.ScheduleRepository,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		scheduleRepo:     scheduleRepo,
	}
}

// CreateAnnouncementRequest represents a request to create an announcement
type CreateAnnouncementRequest struct {
	OrganizationID string                  `json:"organization_id"`
	Title          string                  `json:"title"`
	Content        string                  `json:"content"`
	Methods        []models.Method         `json:"communication_methods"`
	Type           models.AnnouncementType `json:"type,omitempty"`
}

// Validate validates the create announcement request
func (r *CreateAnnouncementRequest) Validate() error {
	if r.OrganizationID == "" {
		return fmt.Errorf("organization_id is required")
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Content == "" {
		return fmt.Errorf("content is required")
	}
	if len(r.Methods) == 0 {
		return fmt.Errorf("communication_methods cannot be empty")
	}
	for _, m := range r.Methods {
		if !models.ValidMethod(m) {
			return fmt.Errorf("invalid communication method: %s", m)
		}
	}
	return nil
}

// CreateAnnouncement creates a new announcement in draft state
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, req *CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	announcementType := req.Type
	if announcementType == "" {
		announcementType = models.AnnouncementTypeGeneral
	}

	announcement := &models.Announcement{
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Content:        req.Content,
		Methods:        req.Methods,
		Type:           announcementType,
		Status:         models.AnnouncementStatusDraft,
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	return announcement, nil
}

// GetAnnouncement retrieves an announcement by ID
func (s *AnnouncementService) GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Resource: "announcement", ID: id}
	}
	return announcement, nil
}

// ListAnnouncements lists announcements with filters
func (s *AnnouncementService) ListAnnouncements(ctx context.Context, filters repository.AnnouncementFilters) ([]*models.Announcement, *PaginationInfo, error) {
	announcements, total, err := s.announcementRepo.List(ctx, filters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	pagination := &PaginationInfo{
		Page:       filters.Page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	return announcements, pagination, nil
}

// ScheduleAnnouncementRequest represents a request to schedule an announcement
type ScheduleAnnouncementRequest struct {
	NextRunAt time.Time              `json:"next_run_at"`
	Frequency models.RepeatFrequency `json:"frequency,omitempty"`
}

// ScheduleAnnouncement binds a recurrence rule to an announcement and marks
// it scheduled
func (s *AnnouncementService) ScheduleAnnouncement(ctx context.Context, announcementID string, req *ScheduleAnnouncementRequest) (*models.AnnouncementSchedule, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		return nil, &NotFoundError{Resource: "announcement", ID: announcementID}
	}

	if announcement.Status != models.AnnouncementStatusDraft && announcement.Status != models.AnnouncementStatusScheduled {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("announcement cannot be scheduled: status is %s", announcement.Status),
		}
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyNone
	}

	nextRun := req.NextRunAt
	schedule := &models.AnnouncementSchedule{
		AnnouncementID: announcementID,
		NextRunAt:      &nextRun,
		Frequency:      frequency,
	}
	if err := schedule.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	if announcement.Status != models.AnnouncementStatusScheduled {
		if err := s.announcementRepo.UpdateStatus(ctx, announcementID, models.AnnouncementStatusScheduled); err != nil {
			return nil, fmt.Errorf("failed to update announcement status: %w", err)
		}
	}

	return schedule, nil
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}
