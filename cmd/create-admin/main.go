// Command create-admin provisions a back-office account. This is the only
// way admin accounts come into existence; the public API has no signup.
//
// Usage:
//
//	create-admin -username dinas -email admin@example.go.id -password secret123
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"vet-portal-api/config"
	"vet-portal-api/models"
	"vet-portal-api/utils"
)

func main() {
	username := flag.String("username", "", "admin username (unique)")
	email := flag.String("email", "", "admin email (unique)")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		log.Fatal("username, email and password are all required")
	}
	if !utils.ValidateEmail(*email) {
		log.Fatal("invalid email address")
	}
	if ok, msg := utils.ValidatePassword(*password); !ok {
		log.Fatal(msg)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.Admin{
		Username: utils.SanitizeInput(*username),
		Email:    utils.SanitizeInput(*email),
		Password: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin (username/email must be unique):", err)
	}

	log.Printf("Admin created: %s <%s> (id=%s)", admin.Username, admin.Email, admin.ID)
}
