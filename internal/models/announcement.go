package models

import (
	"fmt"
	"time"
)

// AnnouncementStatus represents valid announcement statuses
type AnnouncementStatus string

const (
	AnnouncementStatusDraft     AnnouncementStatus = "draft"
	AnnouncementStatusScheduled AnnouncementStatus = "scheduled"
	AnnouncementStatusSending   AnnouncementStatus = "sending"
	AnnouncementStatusSent      AnnouncementStatus = "sent"
	AnnouncementStatusCancelled AnnouncementStatus = "cancelled"
)

// AnnouncementType affects which WhatsApp template is used for delivery
type AnnouncementType string

const (
	AnnouncementTypeGeneral        AnnouncementType = "general"
	AnnouncementTypeCommunityEvent AnnouncementType = "community event"
	AnnouncementTypeMaintenance    AnnouncementType = "maintenance"
	AnnouncementTypeUrgent         AnnouncementType = "urgent"
)

// Method represents a delivery channel for an announcement
type Method string

const (
	MethodEmail    Method = "email"
	MethodSMS      Method = "sms"
	MethodWhatsApp Method = "whatsapp"
)

// Announcement represents a broadcast message to tenants
type Announcement struct {
	ID             string             `json:"id" db:"id"`
	OrganizationID string             `json:"organization_id" db:"organization_id"`
	Title          string             `json:"title" db:"title"`
	Content        string             `json:"content" db:"content"`
	Methods        []Method           `json:"communication_methods" db:"communication_methods"`
	Type           AnnouncementType   `json:"type" db:"type"`
	Status         AnnouncementStatus `json:"status" db:"status"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}

// ValidMethod checks if a delivery method is one of the supported channels
func ValidMethod(m Method) bool {
	return m == MethodEmail || m == MethodSMS || m == MethodWhatsApp
}

// Validate checks if the announcement fields are valid
func (a *Announcement) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("announcement title is required")
	}
	if a.Content == "" {
		return fmt.Errorf("announcement content is required")
	}
	if len(a.Methods) == 0 {
		return fmt.Errorf("at least one communication method is required")
	}
	for _, m := range a.Methods {
		if !ValidMethod(m) {
			return fmt.Errorf("invalid communication method: %s", m)
		}
	}
	return nil
}

// CanSend checks if the announcement is in a sendable state
func (a *Announcement) CanSend() bool {
	return a.Status == AnnouncementStatusDraft || a.Status == AnnouncementStatusScheduled
}

// HasMethod checks if the announcement is configured for a channel
func (a *Announcement) HasMethod(m Method) bool {
	for _, method := range a.Methods {
		if method == m {
			return true
		}
	}
	return false
}

// MethodStrings returns the method set as plain strings for array binding
func (a *Announcement) MethodStrings() []string {
	out := make([]string, len(a.Methods))
	for i, m := range a.Methods {
		out[i] = string(m)
	}
	return out
}

// MethodsFromStrings converts a scanned string array into typed methods
func MethodsFromStrings(values []string) []Method {
	methods := make([]Method, len(values))
	for i, v := range values {
		methods[i] = Method(v)
	}
	return methods
}
