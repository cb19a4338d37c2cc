package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"

	"tenantcast/internal/repository"
	"tenantcast/internal/sender"
	"tenantcast/internal/service"
)

// setupScheduleRouter builds the scheduler endpoint over a mock database
func setupScheduleRouter(db *sql.DB) *mux.Router {
	announcementRepo := repository.NewAnnouncementRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	jobRepo := repository.NewJobRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	contactRepo := repository.NewContactRepository(db)

	sendSvc := service.NewSendService(announcementRepo, jobRepo, taskRepo, contactRepo, nil, 50)
	batchSvc := service.NewBatchService(jobRepo, taskRepo, announcementRepo, contactRepo, sender.NewSimulated(1.0), service.NewTemplateService(), nil)
	schedulerSvc := service.NewSchedulerService(scheduleRepo, taskRepo, sendSvc, batchSvc, 5, 50)

	router := mux.NewRouter()
	router.HandleFunc("/check-schedules", NewScheduleHandler(schedulerSvc).CheckSchedules).Methods("POST")
	return router
}

func TestCheckSchedulesEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	// The two scans run concurrently, so expectation order cannot be fixed
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT (.+) FROM announcement_schedules").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "announcement_id", "next_run_at", "frequency", "created_at", "updated_at",
		}))
	mock.ExpectQuery("SELECT (.+) FROM announcement_background_tasks").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "job_id", "announcement_id", "status", "remaining_count",
			"next_batch_index", "error_message", "created_at", "completed_at",
		}))

	router := setupScheduleRouter(db)
	req := httptest.NewRequest("POST", "/check-schedules", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assertStatusCode(t, resp, http.StatusOK)

	var result CheckSchedulesResponse
	parseJSONResponse(t, resp, &result)
	if result.ScheduledAnnouncements.Processed != 0 || result.BackgroundTasks.Processed != 0 {
		t.Errorf("Expected empty scan summary but got %+v", result)
	}
	if result.Message == "" {
		t.Error("Expected a message in the response")
	}
}

func TestCheckSchedulesFetchFailure(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT (.+) FROM announcement_schedules").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectQuery("SELECT (.+) FROM announcement_background_tasks").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "job_id", "announcement_id", "status", "remaining_count",
			"next_batch_index", "error_message", "created_at", "completed_at",
		}))

	router := setupScheduleRouter(db)
	req := httptest.NewRequest("POST", "/check-schedules", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assertStatusCode(t, resp, http.StatusInternalServerError)

	var errResp CheckSchedulesError
	parseJSONResponse(t, resp, &errResp)
	if errResp.Error == "" || errResp.Details == "" {
		t.Errorf("Expected error and details but got %+v", errResp)
	}
}
