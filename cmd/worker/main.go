package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tenantcast/internal/config"
	"tenantcast/internal/queue"
	"tenantcast/internal/repository"
	"tenantcast/internal/sender"
	"tenantcast/internal/service"
)

func main() {
	// Load .env file (ignore error in production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Verify database connection
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("✅ Connected to database")

	// Connect to RabbitMQ
	conn, err := queue.NewConnection(cfg.GetRabbitMQURL())
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()
	log.Println("✅ Connected to RabbitMQ")

	// Publisher for successor tasks created at each batch boundary
	publisher, err := queue.NewPublisher(conn, queue.QueueName)
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}

	// Initialize repositories and services
	announcementRepo := repository.NewAnnouncementRepository(db)
	jobRepo := repository.NewJobRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	contactRepo := repository.NewContactRepository(db)

	provider := sender.NewProviderClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.WhatsAppFrom)
	templateSvc := service.NewTemplateService()
	batchSvc := service.NewBatchService(jobRepo, taskRepo, announcementRepo, contactRepo, provider, templateSvc, publisher)
	log.Println("✅ Services initialized")

	// Create task handler
	handler := createTaskHandler(taskRepo, batchSvc)

	// Start consumer
	consumer, err := queue.NewConsumer(conn, queue.QueueName, handler)
	if err != nil {
		log.Fatalf("Failed to create consumer: %v", err)
	}

	if err := consumer.Start(); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}
	log.Printf("✅ Worker started, consuming from queue: %s", queue.QueueName)

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("🛑 Shutting down gracefully...")

	if err := consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	conn.Close()
	db.Close()

	log.Println("✅ Worker stopped")
}

// createTaskHandler creates the batch-processing handler. Every delivery is
// acked regardless of outcome: failures are persisted on the task row and
// surfaced to operators there, never replayed by the broker.
func createTaskHandler(taskRepo repository.TaskRepository, batchSvc *service.BatchService) queue.TaskHandler {
	return func(job *queue.TaskJob) error {
		ctx := context.Background()

		log.Printf("📨 Processing task %s (job %s)", job.TaskID, job.JobID)

		// Claim the task so the scheduler's pending-task scan and other
		// workers cannot process the same batch range.
		claimed, err := taskRepo.Claim(ctx, job.TaskID)
		if err != nil {
			log.Printf("❌ Failed to claim task %s: %v", job.TaskID, err)
			return err
		}
		if !claimed {
			log.Printf("⚠️  Task %s already claimed, skipping", job.TaskID)
			return nil
		}

		result, err := batchSvc.ProcessBatch(ctx, job.JobID, job.BatchSize)
		if err != nil {
			log.Printf("❌ Batch failed for job %s: %v", job.JobID, err)
			if markErr := taskRepo.MarkFailed(ctx, job.TaskID, err.Error()); markErr != nil {
				log.Printf("❌ Failed to mark task %s failed: %v", job.TaskID, markErr)
			}
			return err
		}

		log.Printf("✅ Batch done for job %s: sent=%d failed=%d remaining=%d complete=%v",
			result.JobID, result.Sent, result.Failed, result.Remaining, result.IsComplete)
		return nil
	}
}
