package models

import "testing"

func TestAnnouncementValidate(t *testing.T) {
	tests := []struct {
		name         string
		announcement Announcement
		wantErr      bool
	}{
		{
			name: "valid",
			announcement: Announcement{
				Title:   "Water Outage",
				Content: "Water off Saturday morning.",
				Methods: []Method{MethodEmail, MethodSMS},
			},
			wantErr: false,
		},
		{
			name: "missing title",
			announcement: Announcement{
				Content: "Water off Saturday morning.",
				Methods: []Method{MethodEmail},
			},
			wantErr: true,
		},
		{
			name: "missing content",
			announcement: Announcement{
				Title:   "Water Outage",
				Methods: []Method{MethodEmail},
			},
			wantErr: true,
		},
		{
			name: "no methods",
			announcement: Announcement{
				Title:   "Water Outage",
				Content: "Water off Saturday morning.",
				Methods: []Method{},
			},
			wantErr: true,
		},
		{
			name: "unsupported method",
			announcement: Announcement{
				Title:   "Water Outage",
				Content: "Water off Saturday morning.",
				Methods: []Method{"carrier pigeon"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.announcement.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnnouncementCanSend(t *testing.T) {
	tests := []struct {
		status AnnouncementStatus
		want   bool
	}{
		{AnnouncementStatusDraft, true},
		{AnnouncementStatusScheduled, true},
		{AnnouncementStatusSending, false},
		{AnnouncementStatusSent, false},
		{AnnouncementStatusCancelled, false},
	}

	for _, tt := range tests {
		a := &Announcement{Status: tt.status}
		if got := a.CanSend(); got != tt.want {
			t.Errorf("CanSend() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestMethodRoundTrip(t *testing.T) {
	a := &Announcement{Methods: []Method{MethodEmail, MethodWhatsApp}}

	strings := a.MethodStrings()
	if len(strings) != 2 || strings[0] != "email" || strings[1] != "whatsapp" {
		t.Errorf("Unexpected method strings: %v", strings)
	}

	methods := MethodsFromStrings(strings)
	if len(methods) != 2 || methods[0] != MethodEmail || methods[1] != MethodWhatsApp {
		t.Errorf("Unexpected methods: %v", methods)
	}
}

func TestHasMethod(t *testing.T) {
	a := &Announcement{Methods: []Method{MethodSMS}}

	if !a.HasMethod(MethodSMS) {
		t.Error("Expected sms to be configured")
	}
	if a.HasMethod(MethodEmail) {
		t.Error("Expected email to be absent")
	}
}
