package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"tenantcast/internal/config"
)

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Command-line flags
var (
	tenantsCount = flag.Int("tenants", 12, "Number of tenants to create")
	clearData    = flag.Bool("clear", false, "Clear existing seed data before inserting")
	showHelp     = flag.Bool("help", false, "Show usage information")
)

// seedOrgID scopes all seeded rows so they can be cleared safely
const seedOrgID = "org-demo"

func main() {
	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	// Load .env file (ignore error if not present)
	_ = godotenv.Load()

	printInfo("=== Tenantcast Database Seeder ===\n")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(fmt.Sprintf("Failed to load configuration: %v", err))
		os.Exit(1)
	}

	// Connect to database
	printInfo("Connecting to database...")
	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		printError(fmt.Sprintf("Failed to open database connection: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	// Test connection
	if err := db.Ping(); err != nil {
		printError(fmt.Sprintf("Failed to ping database: %v", err))
		os.Exit(1)
	}
	printSuccess("✓ Connected to database\n")

	// Clear data if requested
	if *clearData {
		if err := clearSeedData(db); err != nil {
			printError(fmt.Sprintf("Failed to clear seed data: %v", err))
			os.Exit(1)
		}
	}

	// Seed tenants
	tenantsCreated, err := seedTenants(db, *tenantsCount)
	if err != nil {
		printError(fmt.Sprintf("Failed to seed tenants: %v", err))
		os.Exit(1)
	}

	// Seed announcements and schedules
	announcementsCreated, schedulesCreated, err := seedAnnouncements(db)
	if err != nil {
		printError(fmt.Sprintf("Failed to seed announcements: %v", err))
		os.Exit(1)
	}

	// Print summary
	printInfo("\n=== Seeding Summary ===")
	printSuccess(fmt.Sprintf("✓ Tenants created: %d", tenantsCreated))
	printSuccess(fmt.Sprintf("✓ Announcements created: %d", announcementsCreated))
	printSuccess(fmt.Sprintf("✓ Schedules created: %d", schedulesCreated))
	printInfo("\nSeeding completed successfully!")
}

// clearSeedData removes existing seed data
func clearSeedData(db *sql.DB) error {
	printWarning("Clearing existing seed data...")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Pipeline rows cascade from announcements
	_, err = tx.Exec("DELETE FROM announcements WHERE organization_id = $1", seedOrgID)
	if err != nil {
		return fmt.Errorf("failed to delete announcements: %w", err)
	}

	_, err = tx.Exec("DELETE FROM tenants WHERE organization_id = $1", seedOrgID)
	if err != nil {
		return fmt.Errorf("failed to delete tenants: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	printSuccess("✓ Seed data cleared\n")
	return nil
}

// seedTenants generates and inserts tenant contact data
func seedTenants(db *sql.DB, count int) (int, error) {
	printInfo(fmt.Sprintf("Seeding %d tenants...", count))

	firstNames := []string{"Michael", "Sophia", "James", "Olivia", "Daniel", "Emma", "Benjamin", "Ava", "Lucas", "Mia", "Noah", "Isabella", "William", "Charlotte", "Alexander"}
	lastNames := []string{"Kamau", "Wanjiku", "Ochieng", "Atieno", "Mwangi", "Akinyi", "Kipchoge", "Chebet", "Kiptoo", "Jepchirchir", "Mutua", "Mumbua", "Omondi", "Adhiambo", "Nzomo"}

	created := 0
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("tenant-%03d", i)
		name := fmt.Sprintf("%s %s", firstNames[i%len(firstNames)], lastNames[i%len(lastNames)])

		// Varied contact coverage so channel gating has something to skip
		var email, phone, whatsapp *string

		if i%5 != 0 { // 80% have email
			email = stringPtr(fmt.Sprintf("tenant%03d@example.com", i))
		}

		if i%3 != 0 { // 66% have a phone number
			phone = stringPtr(fmt.Sprintf("+254700020%03d", i))
		}

		if i%2 != 0 { // 50% have WhatsApp
			whatsapp = stringPtr(fmt.Sprintf("+254700020%03d", i))
		}

		// Insert with ON CONFLICT for idempotency
		query := `
			INSERT INTO tenants (id, organization_id, name, email, phone_number, whatsapp_number)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`

		result, err := db.Exec(query, id, seedOrgID, name, email, phone, whatsapp)
		if err != nil {
			return created, fmt.Errorf("failed to insert tenant %s: %w", id, err)
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected > 0 {
			created++
		}
	}

	printSuccess(fmt.Sprintf("✓ Seeded %d tenants (skipped %d existing)", created, count-created))
	return created, nil
}

// seedAnnouncements inserts a spread of announcements and a schedule for each
// scheduled one
func seedAnnouncements(db *sql.DB) (int, int, error) {
	printInfo("Seeding announcements...")

	announcements := []struct {
		id       string
		title    string
		content  string
		methods  []string
		kind     string
		status   string
		nextRun  *time.Time
		repeat   string
	}{
		{
			id:      "announcement-001",
			title:   "Water Outage Notice",
			content: "Water will be shut off on Saturday from 9am to 1pm for maintenance.",
			methods: []string{"email", "sms"},
			kind:    "maintenance",
			status:  "scheduled",
			nextRun: timePtr(time.Now().Add(24 * time.Hour)),
			repeat:  "none",
		},
		{
			id:      "announcement-002",
			title:   "Rooftop BBQ, Saturday at the courtyard",
			content: "Join us for the monthly rooftop BBQ, Saturday 4pm at the courtyard",
			methods: []string{"email", "whatsapp"},
			kind:    "community event",
			status:  "scheduled",
			nextRun: timePtr(time.Now().Add(48 * time.Hour)),
			repeat:  "monthly",
		},
		{
			id:      "announcement-003",
			title:   "Rent Reminder",
			content: "A friendly reminder that rent is due on the 1st of the month.",
			methods: []string{"sms"},
			kind:    "general",
			status:  "draft",
			repeat:  "none",
		},
		{
			id:      "announcement-004",
			title:   "Gas Leak Resolved",
			content: "The gas leak reported in Block C has been resolved. Thank you for your patience.",
			methods: []string{"email", "sms", "whatsapp"},
			kind:    "urgent",
			status:  "sent",
			repeat:  "none",
		},
	}

	createdAnnouncements := 0
	createdSchedules := 0

	for _, a := range announcements {
		query := `
			INSERT INTO announcements (id, organization_id, title, content, communication_methods, type, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`

		result, err := db.Exec(query, a.id, seedOrgID, a.title, a.content, pq.Array(a.methods), a.kind, a.status)
		if err != nil {
			return createdAnnouncements, createdSchedules, fmt.Errorf("failed to insert announcement %s: %w", a.id, err)
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected > 0 {
			createdAnnouncements++
		}

		if a.nextRun == nil {
			continue
		}

		scheduleQuery := `
			INSERT INTO announcement_schedules (id, announcement_id, next_run_at, frequency)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`

		scheduleID := a.id + "-schedule"
		result, err = db.Exec(scheduleQuery, scheduleID, a.id, a.nextRun, a.repeat)
		if err != nil {
			return createdAnnouncements, createdSchedules, fmt.Errorf("failed to insert schedule %s: %w", scheduleID, err)
		}

		rowsAffected, _ = result.RowsAffected()
		if rowsAffected > 0 {
			createdSchedules++
		}
	}

	printSuccess(fmt.Sprintf("✓ Seeded %d announcements, %d schedules", createdAnnouncements, createdSchedules))
	return createdAnnouncements, createdSchedules, nil
}

// Helper functions

// stringPtr returns a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// timePtr returns a pointer to a time.Time
func timePtr(t time.Time) *time.Time {
	return &t
}

// printSuccess prints a success message in green
func printSuccess(msg string) {
	fmt.Printf("%s%s%s\n", colorGreen, msg, colorReset)
}

// printError prints an error message in red
func printError(msg string) {
	fmt.Fprintf(os.Stderr, "%s%s%s\n", colorRed, msg, colorReset)
}

// printInfo prints an info message in cyan
func printInfo(msg string) {
	fmt.Printf("%s%s%s\n", colorCyan, msg, colorReset)
}

// printWarning prints a warning message in yellow
func printWarning(msg string) {
	fmt.Printf("%s%s%s\n", colorYellow, msg, colorReset)
}

// printUsage displays usage information
func printUsage() {
	printInfo("=== Tenantcast Database Seeder ===\n")
	fmt.Println("Usage: go run ./scripts/seed [flags]")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  go run ./scripts/seed")
	fmt.Println("  go run ./scripts/seed -tenants=30")
	fmt.Println("  go run ./scripts/seed -clear")
	fmt.Println("\nNotes:")
	fmt.Println("  - All seeded rows belong to organization 'org-demo'")
	fmt.Println("  - The script is idempotent - running multiple times won't create duplicates")
	fmt.Println("  - Use -clear to remove existing seed data before inserting new data")
}
