package service

import (
	"fmt"
	"testing"
	"time"

	"tenantcast/internal/models"
)

// AssertNoError checks that no error occurred
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Expected no error but got: %v", err)
	}
}

// AssertError checks that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected an error but got nil")
	}
}

// AssertEqual checks if two values are equal
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Errorf("Expected %v but got %v", want, got)
	}
}

// stringPtr returns a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// timePtr returns a pointer to a time.Time
func timePtr(tm time.Time) *time.Time {
	return &tm
}

// NewTestAnnouncement creates a sendable announcement with all channels
func NewTestAnnouncement(id string) *models.Announcement {
	return &models.Announcement{
		ID:             id,
		OrganizationID: "org-1",
		Title:          "Water Outage Notice",
		Content:        "Hi {name}, water will be off Saturday morning.",
		Methods:        []models.Method{models.MethodEmail},
		Type:           models.AnnouncementTypeGeneral,
		Status:         models.AnnouncementStatusScheduled,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// NewTestSchedule creates a due schedule
func NewTestSchedule(id string, frequency models.RepeatFrequency) *models.AnnouncementSchedule {
	nextRun := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &models.AnnouncementSchedule{
		ID:             id,
		AnnouncementID: "announcement-1",
		NextRunAt:      &nextRun,
		Frequency:      frequency,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// NewTestJob creates an active job with zeroed counters
func NewTestJob(id, announcementID string) *models.AnnouncementJob {
	return &models.AnnouncementJob{
		ID:             id,
		AnnouncementID: announcementID,
		Status:         models.JobStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// NewTestTask creates a pending cursor task at the given batch index
func NewTestTask(id, jobID string, nextBatchIndex int) *models.BackgroundTask {
	return &models.BackgroundTask{
		ID:             id,
		JobID:          jobID,
		AnnouncementID: "announcement-1",
		Status:         models.TaskStatusPending,
		NextBatchIndex: nextBatchIndex,
		CreatedAt:      time.Now(),
	}
}

// NewTestContact creates a contact with every channel populated
func NewTestContact(id string) *models.TenantContact {
	return &models.TenantContact{
		ID:       id,
		Name:     "Jane Wanjiku",
		Email:    stringPtr(fmt.Sprintf("%s@example.com", id)),
		Phone:    stringPtr("+254700000001"),
		WhatsApp: stringPtr("+254700000001"),
	}
}

// NewTestContacts creates n fully-populated contacts with ordered ids
func NewTestContacts(n int) []*models.TenantContact {
	contacts := make([]*models.TenantContact, n)
	for i := 0; i < n; i++ {
		contacts[i] = NewTestContact(fmt.Sprintf("tenant-%03d", i+1))
	}
	return contacts
}
