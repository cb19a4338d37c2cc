package handler

import (
	"log"
	"net/http"

	"tenantcast/internal/service"
)

// ScheduleHandler handles HTTP requests for the schedule scanner
type ScheduleHandler struct {
	schedulerService *service.SchedulerService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(schedulerService *service.SchedulerService) *ScheduleHandler {
	return &ScheduleHandler{
		schedulerService: schedulerService,
	}
}

// CheckSchedulesResponse represents the scheduler run summary
type CheckSchedulesResponse struct {
	Message                string              `json:"message"`
	ScheduledAnnouncements service.ScanSummary `json:"scheduled_announcements"`
	BackgroundTasks        service.ScanSummary `json:"background_tasks"`
}

// CheckSchedulesError is the top-level failure response
type CheckSchedulesError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// CheckSchedules handles POST /check-schedules - runs one scheduler pass
func (h *ScheduleHandler) CheckSchedules(w http.ResponseWriter, r *http.Request) {
	result, err := h.schedulerService.RunScheduleCheck(r.Context())
	if err != nil {
		log.Printf("ERROR: schedule check failed: %v", err)
		WriteJSON(w, http.StatusInternalServerError, CheckSchedulesError{
			Error:   "schedule check failed",
			Details: err.Error(),
		})
		return
	}

	WriteOK(w, CheckSchedulesResponse{
		Message:                "schedule check completed",
		ScheduledAnnouncements: result.ScheduledAnnouncements,
		BackgroundTasks:        result.BackgroundTasks,
	})
}
