package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Seitek2002/ibox-next/middleware"
	"github.com/Seitek2002/ibox-next/models"
	"github.com/Seitek2002/ibox-next/routes"
	"github.com/Seitek2002/ibox-next/upstream"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Session{},
		&models.CartLine{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Legacy /I paths redirect before anything else runs
	r.Use(middleware.RewriteLegacyPaths)

	// Every request gets a session
	r.Use(middleware.Session(db))

	// Setup routes
	routes.SetupRoutes(r, db, upstream.NewClient())

	// Purge abandoned sessions nightly at 2 AM, keep 180 days
	go startDailySessionCleanup(db, 180*24*time.Hour, 2, 0)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// startDailySessionCleanup removes sessions (and their cart lines) not
// touched within the retention window, daily at a fixed hour
func startDailySessionCleanup(db *gorm.DB, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next session cleanup scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		cutoff := time.Now().Add(-retention)

		var stale []models.Session
		if err := db.Where("updated_at < ?", cutoff).Find(&stale).Error; err != nil {
			log.Printf("❌ Failed to list stale sessions: %v", err)
			continue
		}
		for _, sess := range stale {
			if err := db.Where("session_id = ?", sess.ID).Delete(&models.CartLine{}).Error; err != nil {
				log.Printf("❌ Failed to remove cart for session %s: %v", sess.ID, err)
				continue
			}
			if err := db.Delete(&sess).Error; err != nil {
				log.Printf("❌ Failed to remove session %s: %v", sess.ID, err)
			}
		}
		if len(stale) > 0 {
			log.Printf("🗑️ Removed %d stale sessions", len(stale))
		}
	}
}
