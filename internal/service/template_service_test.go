package service

import (
	"testing"

	"tenantcast/internal/models"
)

func TestRenderReplacesName(t *testing.T) {
	svc := NewTemplateService()
	contact := NewTestContact("tenant-001")
	contact.Name = "Jane Wanjiku"

	rendered, err := svc.Render("Hi {name}, water is off Saturday.", contact)
	AssertNoError(t, err)
	AssertEqual(t, rendered, "Hi Jane Wanjiku, water is off Saturday.")
}

func TestRenderMissingNameUsesFallback(t *testing.T) {
	svc := NewTemplateService()
	contact := &models.TenantContact{ID: "tenant-001"}

	rendered, err := svc.Render("Hi {name}!", contact)
	AssertNoError(t, err)
	AssertEqual(t, rendered, "Hi Tenant!")
}

func TestRenderEmptyContent(t *testing.T) {
	svc := NewTemplateService()

	_, err := svc.Render("", NewTestContact("tenant-001"))
	AssertError(t, err)
}

func TestRenderNilContact(t *testing.T) {
	svc := NewTemplateService()

	_, err := svc.Render("Hello", nil)
	AssertError(t, err)
}

func TestWhatsAppTemplateGeneralAnnouncement(t *testing.T) {
	svc := NewTemplateService()
	a := NewTestAnnouncement("announcement-1")
	a.Type = models.AnnouncementTypeGeneral

	template, params := svc.WhatsAppTemplate(a)
	AssertEqual(t, template, WhatsAppTemplateGeneral)
	if len(params) != 2 {
		t.Fatalf("Expected 2 parameters but got %d", len(params))
	}
	AssertEqual(t, params[0], a.Title)
	AssertEqual(t, params[1], a.Content)
}

func TestWhatsAppTemplateCommunityEventSplitsContent(t *testing.T) {
	svc := NewTemplateService()
	a := NewTestAnnouncement("announcement-1")
	a.Type = models.AnnouncementTypeCommunityEvent
	a.Title = "Rooftop BBQ"
	a.Content = "Saturday 4pm, the courtyard"

	template, params := svc.WhatsAppTemplate(a)
	AssertEqual(t, template, WhatsAppTemplateCommunityEvent)
	if len(params) != 3 {
		t.Fatalf("Expected 3 parameters but got %d", len(params))
	}
	AssertEqual(t, params[0], "Rooftop BBQ")
	AssertEqual(t, params[1], "Saturday 4pm")
	AssertEqual(t, params[2], "the courtyard")
}

func TestWhatsAppTemplateCommunityEventWithoutComma(t *testing.T) {
	// Content without a comma falls back to the full content for both the
	// date and location placeholders
	svc := NewTemplateService()
	a := NewTestAnnouncement("announcement-1")
	a.Type = models.AnnouncementTypeCommunityEvent
	a.Content = "Saturday at the courtyard"

	_, params := svc.WhatsAppTemplate(a)
	AssertEqual(t, params[1], "Saturday at the courtyard")
	AssertEqual(t, params[2], "Saturday at the courtyard")
}
