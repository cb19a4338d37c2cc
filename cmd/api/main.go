package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tenantcast/internal/config"
	"tenantcast/internal/handler"
	"tenantcast/internal/middleware"
	"tenantcast/internal/queue"
	"tenantcast/internal/repository"
	"tenantcast/internal/sender"
	"tenantcast/internal/service"
)

const version = "1.0.0"

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

	// Connect to RabbitMQ. The publisher is optional: without it the
	// scheduler's pending-task scan still drives every batch.
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

	// Initialize repositories
	announcementRepo := repository.NewAnnouncementRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	jobRepo := repository.NewJobRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Initialize services
	provider := sender.NewProviderClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.WhatsAppFrom)
	templateSvc := service.NewTemplateService()
	announcementSvc := service.NewAnnouncementService(announcementRepo, scheduleRepo)
	sendSvc := service.NewSendService(announcementRepo, jobRepo, taskRepo, contactRepo, publisher, cfg.Scheduler.BatchSize)
	batchSvc := service.NewBatchService(jobRepo, taskRepo, announcementRepo, contactRepo, provider, templateSvc, publisher)
	schedulerSvc := service.NewSchedulerService(scheduleRepo, taskRepo, sendSvc, batchSvc, cfg.Scheduler.MaxTasksPerRun, cfg.Scheduler.BatchSize)
	healthSvc := service.NewHealthService(db, cfg.GetRabbitMQURL(), version)
	log.Println("✅ Services initialized")

	// Initialize handlers
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc, sendSvc)
	batchHandler := handler.NewBatchHandler(batchSvc)
	scheduleHandler := handler.NewScheduleHandler(schedulerSvc)
	sendHandler := handler.NewSendHandler(provider)
	healthHandler := handler.NewHealthHandler(healthSvc)

	// Create router
	router := mux.NewRouter()
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS)

	router.HandleFunc("/health", healthHandler.HandleHealth).Methods("GET")

	// Pipeline entry points
	router.HandleFunc("/check-schedules", scheduleHandler.CheckSchedules).Methods("POST", "OPTIONS")
	router.HandleFunc("/process-announcement-batch", batchHandler.ProcessBatch).Methods("POST", "OPTIONS")

	// Channel sender adapters
	router.HandleFunc("/send-email", sendHandler.SendEmail).Methods("POST", "OPTIONS")
	router.HandleFunc("/send-sms", sendHandler.SendSMS).Methods("POST", "OPTIONS")
	router.HandleFunc("/send-whatsapp", sendHandler.SendWhatsApp).Methods("POST", "OPTIONS")
	router.HandleFunc("/register-whatsapp-template", sendHandler.RegisterTemplate).Methods("POST", "OPTIONS")

	// Announcement management
	router.HandleFunc("/announcements", announcementHandler.Create).Methods("POST", "OPTIONS")
	router.HandleFunc("/announcements", announcementHandler.List).Methods("GET")
	router.HandleFunc("/announcements/{id}", announcementHandler.GetByID).Methods("GET")
	router.HandleFunc("/announcements/{id}/send", announcementHandler.Send).Methods("POST", "OPTIONS")
	router.HandleFunc("/announcements/{id}/schedule", announcementHandler.Schedule).Methods("POST", "OPTIONS")

	// Start server
	port := ":" + cfg.Server.Port
	log.Printf("🚀 API server starting on port %s", port)
	log.Printf("📍 Health check: http://localhost%s/health", port)
	log.Printf("🌍 Environment: %s", cfg.Env)

	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
