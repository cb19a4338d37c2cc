package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

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

	// RabbitMQ is optional here as well: when it is down the scheduler
	// processes pending tasks itself instead of handing them to workers.
	var publisher service.TaskPublisher
	conn, err := queue.NewConnection(cfg.GetRabbitMQURL())
	if err != nil {
		log.Printf("⚠️  RabbitMQ unavailable, running without queue: %v", err)
	} else {
		defer conn.Close()
		pub, err := queue.NewPublisher(conn, queue.QueueName)
		if err != nil {
			log.Printf("⚠️  Failed to create publisher, running without queue: %v", err)
		} else {
			publisher = pub
			log.Println("✅ Connected to RabbitMQ")
		}
	}

	// Initialize repositories and services
	announcementRepo := repository.NewAnnouncementRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	jobRepo := repository.NewJobRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	contactRepo := repository.NewContactRepository(db)

	provider := sender.NewProviderClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.WhatsAppFrom)
	templateSvc := service.NewTemplateService()
	sendSvc := service.NewSendService(announcementRepo, jobRepo, taskRepo, contactRepo, publisher, cfg.Scheduler.BatchSize)
	batchSvc := service.NewBatchService(jobRepo, taskRepo, announcementRepo, contactRepo, provider, templateSvc, publisher)
	schedulerSvc := service.NewSchedulerService(scheduleRepo, taskRepo, sendSvc, batchSvc, cfg.Scheduler.MaxTasksPerRun, cfg.Scheduler.BatchSize)
	log.Println("✅ Services initialized")

	ticker := time.NewTicker(cfg.Scheduler.Interval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("🚀 Scheduler started, checking every %s", cfg.Scheduler.Interval)

	runCheck(schedulerSvc, cfg.Scheduler.Interval)

	for {
		select {
		case <-ticker.C:
			runCheck(schedulerSvc, cfg.Scheduler.Interval)
		case <-sigChan:
			log.Println("🛑 Shutting down gracefully...")
			log.Println("✅ Scheduler stopped")
			return
		}
	}
}

// runCheck performs one scheduler pass bounded by the tick interval, so a
// stuck run cannot pile up behind the next tick.
func runCheck(schedulerSvc *service.SchedulerService, interval time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), interval)
	defer cancel()

	result, err := schedulerSvc.RunScheduleCheck(ctx)
	if err != nil {
		log.Printf("❌ Schedule check failed: %v", err)
		return
	}

	log.Printf("✅ Schedule check done: %d schedules triggered, %d tasks processed",
		result.ScheduledAnnouncements.Processed, result.BackgroundTasks.Processed)
}
