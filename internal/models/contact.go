package models

// TenantContact represents a resolved, de-duplicated recipient for an
// announcement. Any address may be absent, which gates which channels are
// attempted for that contact.
type TenantContact struct {
	ID       string  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Email    *string `json:"email,omitempty" db:"email"`
	Phone    *string `json:"phone_number,omitempty" db:"phone_number"`
	WhatsApp *string `json:"whatsapp_number,omitempty" db:"whatsapp_number"`
}

// Address returns the contact's address for a channel, and whether it is
// populated. A missing address means the channel is skipped, not failed.
func (c *TenantContact) Address(m Method) (string, bool) {
	var addr *string
	switch m {
	case MethodEmail:
		addr = c.Email
	case MethodSMS:
		addr = c.Phone
	case MethodWhatsApp:
		addr = c.WhatsApp
	}
	if addr == nil || *addr == "" {
		return "", false
	}
	return *addr, true
}

// Reachable filters a method set down to the channels this contact has an
// address for.
func (c *TenantContact) Reachable(methods []Method) []Method {
	reachable := []Method{}
	for _, m := range methods {
		if _, ok := c.Address(m); ok {
			reachable = append(reachable, m)
		}
	}
	return reachable
}

// DisplayName returns the contact's name or a fallback
func (c *TenantContact) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return "Tenant"
}
