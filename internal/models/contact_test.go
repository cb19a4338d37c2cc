package models

import "testing"

func strPtr(s string) *string {
	return &s
}

func TestContactAddress(t *testing.T) {
	contact := &TenantContact{
		ID:    "tenant-1",
		Name:  "Jane Wanjiku",
		Email: strPtr("jane@example.com"),
		Phone: strPtr("+254700000001"),
	}

	addr, ok := contact.Address(MethodEmail)
	if !ok || addr != "jane@example.com" {
		t.Errorf("Expected email address, got %q (ok=%v)", addr, ok)
	}

	addr, ok = contact.Address(MethodSMS)
	if !ok || addr != "+254700000001" {
		t.Errorf("Expected phone number, got %q (ok=%v)", addr, ok)
	}

	// No WhatsApp number: the channel is gated off
	if _, ok := contact.Address(MethodWhatsApp); ok {
		t.Error("Expected whatsapp to be unavailable")
	}
}

func TestContactAddressEmptyString(t *testing.T) {
	contact := &TenantContact{
		ID:    "tenant-1",
		Email: strPtr(""),
	}

	if _, ok := contact.Address(MethodEmail); ok {
		t.Error("Expected empty email to gate the channel off")
	}
}

func TestContactReachable(t *testing.T) {
	contact := &TenantContact{
		ID:       "tenant-1",
		Email:    strPtr("jane@example.com"),
		WhatsApp: strPtr("+254700000001"),
	}

	reachable := contact.Reachable([]Method{MethodEmail, MethodSMS, MethodWhatsApp})
	if len(reachable) != 2 {
		t.Fatalf("Expected 2 reachable channels but got %d", len(reachable))
	}
	if reachable[0] != MethodEmail || reachable[1] != MethodWhatsApp {
		t.Errorf("Expected [email whatsapp] but got %v", reachable)
	}
}

func TestContactReachableNone(t *testing.T) {
	contact := &TenantContact{ID: "tenant-1"}

	reachable := contact.Reachable([]Method{MethodEmail, MethodSMS, MethodWhatsApp})
	if len(reachable) != 0 {
		t.Errorf("Expected no reachable channels but got %v", reachable)
	}
}

func TestContactDisplayName(t *testing.T) {
	named := &TenantContact{Name: "Jane Wanjiku"}
	if got := named.DisplayName(); got != "Jane Wanjiku" {
		t.Errorf("Expected name but got %q", got)
	}

	unnamed := &TenantContact{}
	if got := unnamed.DisplayName(); got != "Tenant" {
		t.Errorf("Expected fallback but got %q", got)
	}
}
