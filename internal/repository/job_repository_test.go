package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tenantcast/internal/models"
)

func TestJobRecordBatch(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE announcement_jobs").
		WithArgs(50, 48, 2, "tenant-050", "job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewJobRepository(db)
	err := repo.RecordBatch(context.Background(), "job-1", 50, 48, 2, "tenant-050")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestJobMarkCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE announcement_jobs").
		WithArgs("job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewJobRepository(db)
	if err := repo.MarkCompleted(context.Background(), "job-1"); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
}

func TestJobCreate(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO announcement_jobs").
		WithArgs("job-1", "announcement-1", string(models.JobStatusPending)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewJobRepository(db)
	job := &models.AnnouncementJob{
		ID:             "job-1",
		AnnouncementID: "announcement-1",
		Status:         models.JobStatusPending,
	}
	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if job.CreatedAt.IsZero() {
		t.Error("Expected created_at to be populated")
	}
}
