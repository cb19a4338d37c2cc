package service

import (
	"context"
	"time"

	"tenantcast/internal/models"
	"tenantcast/internal/repository"
	"tenantcast/internal/sender"
)

// MockAnnouncementRepository mocks AnnouncementRepository
type MockAnnouncementRepository struct {
	CreateFunc       func(ctx context.Context, announcement *models.Announcement) error
	GetByIDFunc      func(ctx context.Context, id string) (*models.Announcement, error)
	ListFunc         func(ctx context.Context, filters repository.AnnouncementFilters) ([]*models.Announcement, int, error)
	UpdateStatusFunc func(ctx context.Context, id string, status models.AnnouncementStatus) error

	Calls map[string]int // Track method calls
}

func NewMockAnnouncementRepository() *MockAnnouncementRepository {
	return &MockAnnouncementRepository{
		Calls: make(map[string]int),
	}
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	m.Calls["Create"]++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, announcement)
	}
	if announcement.ID == "" {
		announcement.ID = "announcement-1"
	}
	announcement.CreatedAt = time.Now()
	announcement.UpdatedAt = time.Now()
	return nil
}

func (m *MockAnnouncementRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	m.Calls["GetByID"]++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return NewTestAnnouncement(id), nil
}

func (m *MockAnnouncementRepository) List(ctx context.Context, filters repository.AnnouncementFilters) ([]*models.Announcement, int, error) {
	m.Calls["List"]++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters)
	}
	return []*models.Announcement{NewTestAnnouncement("announcement-1")}, 1, nil
}

func (m *MockAnnouncementRepository) UpdateStatus(ctx context.Context, id string, status models.AnnouncementStatus) error {
	m.Calls["UpdateStatus"]++
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockScheduleRepository mocks ScheduleRepository
type MockScheduleRepository struct {
	CreateFunc        func(ctx context.Context, schedule *models.AnnouncementSchedule) error
	GetByIDFunc       func(ctx context.Context, id string) (*models.AnnouncementSchedule, error)
	GetDueFunc        func(ctx context.Context, now time.Time, limit int) ([]*models.AnnouncementSchedule, error)
	UpdateNextRunFunc func(ctx context.Context, id string, nextRun *time.Time) error

	Calls map[string]int
}

func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{
		Calls: make(map[string]int),
	}
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *models.AnnouncementSchedule) error {
	m.Calls["Create"]++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, schedule)
	}
	if schedule.ID == "" {
		schedule.ID = "schedule-1"
	}
	return nil
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id string) (*models.AnnouncementSchedule, error) {
	m.Calls["GetByID"]++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return NewTestSchedule(id, models.FrequencyDaily), nil
}

func (m *MockScheduleRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*models.AnnouncementSchedule, error) {
	m.Calls["GetDue"]++
	if m.GetDueFunc != nil {
		return m.GetDueFunc(ctx, now, limit)
	}
	return []*models.AnnouncementSchedule{}, nil
}

func (m *MockScheduleRepository) UpdateNextRun(ctx context.Context, id string, nextRun *time.Time) error {
	m.Calls["UpdateNextRun"]++
	if m.UpdateNextRunFunc != nil {
		return m.UpdateNextRunFunc(ctx, id, nextRun)
	}
	return nil
}

// MockJobRepository mocks JobRepository
type MockJobRepository struct {
	CreateFunc        func(ctx context.Context, job *models.AnnouncementJob) error
	GetByIDFunc       func(ctx context.Context, id string) (*models.AnnouncementJob, error)
	RecordBatchFunc   func(ctx context.Context, id string, processed, succeeded, failed int, lastProcessedID string) error
	MarkCompletedFunc func(ctx context.Context, id string) error

	Calls map[string]int
}

func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{
		Calls: make(map[string]int),
	}
}

func (m *MockJobRepository) Create(ctx context.Context, job *models.AnnouncementJob) error {
	m.Calls["Create"]++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, job)
	}
	return nil
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*models.AnnouncementJob, error) {
	m.Calls["GetByID"]++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return NewTestJob(id, "announcement-1"), nil
}

func (m *MockJobRepository) RecordBatch(ctx context.Context, id string, processed, succeeded, failed int, lastProcessedID string) error {
	m.Calls["RecordBatch"]++
	if m.RecordBatchFunc != nil {
		return m.RecordBatchFunc(ctx, id, processed, succeeded, failed, lastProcessedID)
	}
	return nil
}

func (m *MockJobRepository) MarkCompleted(ctx context.Context, id string) error {
	m.Calls["MarkCompleted"]++
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, id)
	}
	return nil
}

// MockTaskRepository mocks TaskRepository
type MockTaskRepository struct {
	CreateFunc           func(ctx context.Context, task *models.BackgroundTask) error
	GetLatestByJobIDFunc func(ctx context.Context, jobID string) (*models.BackgroundTask, error)
	GetPendingFunc       func(ctx context.Context, limit int) ([]*models.BackgroundTask, error)
	ClaimFunc            func(ctx context.Context, id string) (bool, error)
	MarkCompletedFunc    func(ctx context.Context, id string) error
	MarkFailedFunc       func(ctx context.Context, id string, errorMessage string) error

	Calls map[string]int
}

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Calls: make(map[string]int),
	}
}

func (m *MockTaskRepository) Create(ctx context.Context, task *models.BackgroundTask) error {
	m.Calls["Create"]++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) GetLatestByJobID(ctx context.Context, jobID string) (*models.BackgroundTask, error) {
	m.Calls["GetLatestByJobID"]++
	if m.GetLatestByJobIDFunc != nil {
		return m.GetLatestByJobIDFunc(ctx, jobID)
	}
	return NewTestTask("task-1", jobID, 0), nil
}

func (m *MockTaskRepository) GetPending(ctx context.Context, limit int) ([]*models.BackgroundTask, error) {
	m.Calls["GetPending"]++
	if m.GetPendingFunc != nil {
		return m.GetPendingFunc(ctx, limit)
	}
	return []*models.BackgroundTask{}, nil
}

func (m *MockTaskRepository) Claim(ctx context.Context, id string) (bool, error) {
	m.Calls["Claim"]++
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, id)
	}
	return true, nil
}

func (m *MockTaskRepository) MarkCompleted(ctx context.Context, id string) error {
	m.Calls["MarkCompleted"]++
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	m.Calls["MarkFailed"]++
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, id, errorMessage)
	}
	return nil
}

// MockContactRepository mocks ContactRepository
type MockContactRepository struct {
	GetForAnnouncementFunc func(ctx context.Context, announcementID string) ([]*models.TenantContact, error)

	Calls map[string]int
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		Calls: make(map[string]int),
	}
}

func (m *MockContactRepository) GetForAnnouncement(ctx context.Context, announcementID string) ([]*models.TenantContact, error) {
	m.Calls["GetForAnnouncement"]++
	if m.GetForAnnouncementFunc != nil {
		return m.GetForAnnouncementFunc(ctx, announcementID)
	}
	return NewTestContacts(3), nil
}

// MockSender mocks the channel sender, recording every attempt
type MockSender struct {
	SendEmailFunc    func(ctx context.Context, to, subject, body string) (*sender.Result, error)
	SendSMSFunc      func(ctx context.Context, to, body string) (*sender.Result, error)
	SendWhatsAppFunc func(ctx context.Context, to, template string, parameters []string) (*sender.Result, error)

	Calls map[string]int
	Sent  []string // addresses attempted, in order
}

func NewMockSender() *MockSender {
	return &MockSender{
		Calls: make(map[string]int),
	}
}

func (m *MockSender) SendEmail(ctx context.Context, to, subject, body string) (*sender.Result, error) {
	m.Calls["SendEmail"]++
	m.Sent = append(m.Sent, to)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, to, subject, body)
	}
	return &sender.Result{MessageID: "msg-email", To: to}, nil
}

func (m *MockSender) SendSMS(ctx context.Context, to, body string) (*sender.Result, error) {
	m.Calls["SendSMS"]++
	m.Sent = append(m.Sent, to)
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(ctx, to, body)
	}
	return &sender.Result{MessageID: "msg-sms", To: to}, nil
}

func (m *MockSender) SendWhatsApp(ctx context.Context, to, template string, parameters []string) (*sender.Result, error) {
	m.Calls["SendWhatsApp"]++
	m.Sent = append(m.Sent, to)
	if m.SendWhatsAppFunc != nil {
		return m.SendWhatsAppFunc(ctx, to, template, parameters)
	}
	return &sender.Result{MessageID: "msg-whatsapp", To: to}, nil
}

// MockPublisher mocks the task queue publisher
type MockPublisher struct {
	PublishTaskFunc func(taskID, jobID string, batchSize int) error

	Calls map[string]int
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Calls: make(map[string]int),
	}
}

func (m *MockPublisher) PublishTask(taskID, jobID string, batchSize int) error {
	m.Calls["PublishTask"]++
	if m.PublishTaskFunc != nil {
		return m.PublishTaskFunc(taskID, jobID, batchSize)
	}
	return nil
}
