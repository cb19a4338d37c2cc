package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tenantcast/internal/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	return db, mock
}

func TestTaskClaimSucceeds(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE announcement_background_tasks").
		WithArgs("task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTaskRepository(db)
	claimed, err := repo.Claim(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if !claimed {
		t.Error("Expected task to be claimed")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestTaskClaimLosesRace(t *testing.T) {
	// Zero affected rows means another run flipped the task first
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE announcement_background_tasks").
		WithArgs("task-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTaskRepository(db)
	claimed, err := repo.Claim(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if claimed {
		t.Error("Expected claim to fail for already-claimed task")
	}
}

func TestTaskCreateIsIdempotent(t *testing.T) {
	// The ON CONFLICT clause makes replayed inserts for the same batch
	// boundary a no-op, so no error either way
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO announcement_background_tasks").
		WithArgs("task-1", "job-1", "announcement-1", string(models.TaskStatusPending), 70, 50).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTaskRepository(db)
	err := repo.Create(context.Background(), &models.BackgroundTask{
		ID:             "task-1",
		JobID:          "job-1",
		AnnouncementID: "announcement-1",
		Status:         models.TaskStatusPending,
		RemainingCount: 70,
		NextBatchIndex: 50,
	})
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestTaskGetLatestByJobID(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "job_id", "announcement_id", "status", "remaining_count",
		"next_batch_index", "error_message", "created_at", "completed_at",
	}).AddRow("task-2", "job-1", "announcement-1", "pending", 20, 100, nil, now, nil)

	mock.ExpectQuery("SELECT (.+) FROM announcement_background_tasks").
		WithArgs("job-1").
		WillReturnRows(rows)

	repo := NewTaskRepository(db)
	task, err := repo.GetLatestByJobID(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if task.ID != "task-2" || task.NextBatchIndex != 100 || task.RemainingCount != 20 {
		t.Errorf("Unexpected task: %+v", task)
	}
}

func TestTaskMarkFailedPersistsError(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE announcement_background_tasks").
		WithArgs("database unavailable", "task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTaskRepository(db)
	if err := repo.MarkFailed(context.Background(), "task-1", "database unavailable"); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
}

func TestTaskMarkCompletedNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE announcement_background_tasks").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTaskRepository(db)
	if err := repo.MarkCompleted(context.Background(), "missing"); err == nil {
		t.Error("Expected error for missing task")
	}
}
