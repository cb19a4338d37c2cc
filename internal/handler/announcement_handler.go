package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tenantcast/internal/models"
	"tenantcast/internal/repository"
	"tenantcast/internal/service"
)

// AnnouncementHandler handles HTTP requests for announcement operations
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
	sendService         *service.SendService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *service.AnnouncementService, sendService *service.SendService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		sendService:         sendService,
	}
}

// Create handles POST /announcements - creates a new announcement
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAnnouncementRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err == io.EOF {
			WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is empty")
			return
		}
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	announcement, err := h.announcementService.CreateAnnouncement(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, announcement)
}

// List handles GET /announcements - lists announcements with filters
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Parse pagination parameters
	page := 1
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	perPage := 20
	if perPageStr := query.Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 {
			perPage = pp
		}
	}

	if perPage > 100 {
		perPage = 100
	}

	filters := repository.AnnouncementFilters{
		Page:     page,
		PageSize: perPage,
	}

	// Parse status filter
	if statusStr := query.Get("status"); statusStr != "" {
		validStatuses := map[string]models.AnnouncementStatus{
			"draft":     models.AnnouncementStatusDraft,
			"scheduled": models.AnnouncementStatusScheduled,
			"sending":   models.AnnouncementStatusSending,
			"sent":      models.AnnouncementStatusSent,
			"cancelled": models.AnnouncementStatusCancelled,
		}
		if status, ok := validStatuses[statusStr]; ok {
			filters.Status = &status
		} else {
			WriteValidationError(w, "invalid status: must be one of draft, scheduled, sending, sent, cancelled")
			return
		}
	}

	// Parse type filter
	if typeStr := query.Get("type"); typeStr != "" {
		announcementType := models.AnnouncementType(typeStr)
		filters.Type = &announcementType
	}

	announcements, pagination, err := h.announcementService.ListAnnouncements(r.Context(), filters)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	response := ListAnnouncementsResponse{
		Announcements: announcements,
		Pagination:    pagination,
	}

	WriteOK(w, response)
}

// GetByID handles GET /announcements/{id} - gets an announcement by ID
func (h *AnnouncementHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		WriteValidationError(w, "announcement ID is required")
		return
	}

	announcement, err := h.announcementService.GetAnnouncement(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, announcement)
}

// Send handles POST /announcements/{id}/send - kicks off a broadcast
func (h *AnnouncementHandler) Send(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		WriteValidationError(w, "announcement ID is required")
		return
	}

	result, err := h.sendService.StartSend(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, result)
}

// Schedule handles POST /announcements/{id}/schedule - binds a recurrence
func (h *AnnouncementHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		WriteValidationError(w, "announcement ID is required")
		return
	}

	var req service.ScheduleAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err == io.EOF {
			WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is empty")
			return
		}
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	schedule, err := h.announcementService.ScheduleAnnouncement(r.Context(), id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, schedule)
}

// ListAnnouncementsResponse represents the response for listing announcements
type ListAnnouncementsResponse struct {
	Announcements []*models.Announcement  `json:"announcements"`
	Pagination    *service.PaginationInfo `json:"pagination"`
}
