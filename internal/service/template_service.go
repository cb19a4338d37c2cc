package service

import (
	"fmt"
	"strings"

	"tenantcast/internal/models"
)

// WhatsApp template names registered with the provider
const (
	WhatsAppTemplateGeneral        = "announcement_general"
	WhatsAppTemplateCommunityEvent = "community_event_invite"
)

// TemplateService handles message content rendering and WhatsApp template
// selection
type TemplateService struct{}

// NewTemplateService creates a new template service
func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

// Render renders announcement content for a contact.
// Replaces {name} placeholders with the contact's name; missing names are
// replaced with a neutral fallback.
func (s *TemplateService) Render(content string, contact *models.TenantContact) (string, error) {
	if content == "" {
		return "", fmt.Errorf("content cannot be empty")
	}

	if contact == nil {
		return "", fmt.Errorf("contact cannot be nil")
	}

	return strings.ReplaceAll(content, "{name}", contact.DisplayName()), nil
}

// WhatsAppTemplate selects the provider template and its ordered placeholder
// values for an announcement.
//
// For community events the date and location placeholders are guessed by
// splitting the content on commas. That heuristic came from the original
// announcement tooling and breaks on content with ordinary commas; it is kept
// until templates grow explicit date/location fields.
func (s *TemplateService) WhatsAppTemplate(a *models.Announcement) (string, []string) {
	if a.Type == models.AnnouncementTypeCommunityEvent {
		date, location := splitEventDetails(a.Content)
		return WhatsAppTemplateCommunityEvent, []string{a.Title, date, location}
	}

	return WhatsAppTemplateGeneral, []string{a.Title, a.Content}
}

// splitEventDetails derives date and location from comma-separated content.
// Content without enough segments falls back to the full content for both.
func splitEventDetails(content string) (date, location string) {
	parts := strings.SplitN(content, ",", 2)
	if len(parts) < 2 {
		return strings.TrimSpace(content), strings.TrimSpace(content)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
