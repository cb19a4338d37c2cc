package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tenantcast/internal/models"
)

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new tenant contact repository
func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

// GetForAnnouncement resolves the de-duplicated contact list eligible to
// receive an announcement. DISTINCT ON collapses tenants that appear more
// than once through lease joins into one canonical row, and the fixed
// ordering keeps the batch cursor stable across invocations.
func (r *contactRepository) GetForAnnouncement(ctx context.Context, announcementID string) ([]*models.TenantContact, error) {
	query := `
		SELECT DISTINCT ON (t.id)
			t.id, t.name, t.email, t.phone_number, t.whatsapp_number
		FROM tenants t
		JOIN announcements a ON a.organization_id = t.organization_id
		WHERE a.id = $1
		ORDER BY t.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, announcementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*models.TenantContact{}
	for rows.Next() {
		contact := &models.TenantContact{}
		err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Phone,
			&contact.WhatsApp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, nil
}
