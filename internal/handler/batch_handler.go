package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tenantcast/internal/models"
	"tenantcast/internal/service"
)

// BatchHandler handles HTTP requests for batch processing
type BatchHandler struct {
	batchService *service.BatchService
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(batchService *service.BatchService) *BatchHandler {
	return &BatchHandler{
		batchService: batchService,
	}
}

// ProcessBatchRequest represents the request to process one batch
type ProcessBatchRequest struct {
	JobID     string `json:"jobId"`
	BatchSize int    `json:"batchSize,omitempty"`
}

// ProcessBatchResponse represents the outcome of one batch
type ProcessBatchResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Announcement *AnnouncementSummary `json:"announcement,omitempty"`
	Stats        BatchStats           `json:"stats"`
	JobID        string               `json:"job_id"`
	TaskID       string               `json:"task_id,omitempty"`
	IsComplete   bool                 `json:"is_complete"`
}

// AnnouncementSummary identifies the announcement a batch belongs to
type AnnouncementSummary struct {
	ID      string                  `json:"id"`
	Title   string                  `json:"title"`
	Type    models.AnnouncementType `json:"type"`
	Methods []models.Method         `json:"methods"`
}

// BatchStats carries per-batch and cumulative counters
type BatchStats struct {
	BatchSize      int `json:"batch_size"`
	Sent           int `json:"sent"`
	Failed         int `json:"failed"`
	Remaining      int `json:"remaining"`
	TotalProcessed int `json:"total_processed"`
}

// ProcessBatch handles POST /process-announcement-batch
func (h *BatchHandler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req ProcessBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err == io.EOF {
			WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is empty")
			return
		}
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	if req.JobID == "" {
		WriteValidationError(w, "jobId is required")
		return
	}

	result, err := h.batchService.ProcessBatch(r.Context(), req.JobID, req.BatchSize)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	response := ProcessBatchResponse{
		Success:    true,
		Message:    batchMessage(result),
		JobID:      result.JobID,
		TaskID:     result.TaskID,
		IsComplete: result.IsComplete,
		Stats: BatchStats{
			BatchSize:      result.BatchSize,
			Sent:           result.Sent,
			Failed:         result.Failed,
			Remaining:      result.Remaining,
			TotalProcessed: result.TotalProcessed,
		},
	}

	if result.Announcement != nil {
		response.Announcement = &AnnouncementSummary{
			ID:      result.Announcement.ID,
			Title:   result.Announcement.Title,
			Type:    result.Announcement.Type,
			Methods: result.Announcement.Methods,
		}
	}

	WriteOK(w, response)
}

// batchMessage describes the batch outcome for the response body
func batchMessage(result *service.BatchResult) string {
	if result.JobStatus == models.JobStatusCancelled {
		return "job is cancelled, nothing to process"
	}
	if result.IsComplete {
		return "announcement fully processed"
	}
	return fmt.Sprintf("batch processed, %d recipients remaining", result.Remaining)
}
