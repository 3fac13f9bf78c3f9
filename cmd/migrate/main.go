// Command migrate creates or updates the portal schema. The schema lives in
// the models package only; this tool and the API share the same definitions.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"vet-portal-api/config"
	"vet-portal-api/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Submission{},
		&models.NotificationLog{},
		&models.Admin{},
	); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Migration completed: submissions, notification_logs, admins")
}
