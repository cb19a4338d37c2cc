package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tenantcast/internal/models"
)

type announcementRepository struct {
	db *sql.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *sql.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create creates a new announcement
func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	if announcement.ID == "" {
		announcement.ID = uuid.NewString()
	}

	query := `
		INSERT INTO announcements (id, organization_id, title, content, communication_methods, type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		announcement.ID,
		announcement.OrganizationID,
		announcement.Title,
		announcement.Content,
		pq.Array(announcement.MethodStrings()),
		announcement.Type,
		announcement.Status,
	).Scan(&announcement.CreatedAt, &announcement.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	return nil
}

// GetByID retrieves an announcement by ID
func (r *announcementRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	query := `
		SELECT id, organization_id, title, content, communication_methods, type, status, created_at, updated_at
		FROM announcements
		WHERE id = $1
	`

	announcement := &models.Announcement{}
	var methods pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&announcement.ID,
		&announcement.OrganizationID,
		&announcement.Title,
		&announcement.Content,
		&methods,
		&announcement.Type,
		&announcement.Status,
		&announcement.CreatedAt,
		&announcement.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("announcement not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	announcement.Methods = models.MethodsFromStrings(methods)
	return announcement, nil
}

// List retrieves announcements with filters and pagination
func (r *announcementRepository) List(ctx context.Context, filters AnnouncementFilters) ([]*models.Announcement, int, error) {
	// Build query with filters
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT id, organization_id, title, content, communication_methods, type, status, created_at, updated_at
		FROM announcements
		WHERE 1=1
	`)

	args := []interface{}{}
	argPos := 1

	if filters.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argPos))
		args = append(args, *filters.Status)
		argPos++
	}

	if filters.Type != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND type = $%d", argPos))
		args = append(args, *filters.Type)
		argPos++
	}

	// Order by created_at DESC for stable pagination
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	// Add pagination
	limit := filters.PageSize
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := (filters.Page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, limit, offset)

	// Execute query
	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	announcements := []*models.Announcement{}
	for rows.Next() {
		announcement := &models.Announcement{}
		var methods pq.StringArray
		err := rows.Scan(
			&announcement.ID,
			&announcement.OrganizationID,
			&announcement.Title,
			&announcement.Content,
			&methods,
			&announcement.Type,
			&announcement.Status,
			&announcement.CreatedAt,
			&announcement.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcement.Methods = models.MethodsFromStrings(methods)
		announcements = append(announcements, announcement)
	}

	// Get total count
	countQuery := "SELECT COUNT(*) FROM announcements WHERE 1=1"
	countArgs := []interface{}{}

	if filters.Status != nil {
		countQuery += " AND status = $1"
		countArgs = append(countArgs, *filters.Status)
	}

	if filters.Type != nil {
		pos := len(countArgs) + 1
		countQuery += fmt.Sprintf(" AND type = $%d", pos)
		countArgs = append(countArgs, *filters.Type)
	}

	var totalCount int
	err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	return announcements, totalCount, nil
}

// UpdateStatus updates announcement status
func (r *announcementRepository) UpdateStatus(ctx context.Context, id string, status models.AnnouncementStatus) error {
	query := `
		UPDATE announcements
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update announcement status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("announcement not found")
	}

	return nil
}
