package main

import (
	"flag"
	"log"

	"stockflow-api/internal/model"
	"stockflow-api/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Bootstrap utility: creates the admin account, or resets its password if it
// already exists.
func main() {
	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "admin123", "admin password")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("❌ Failed to migrate users table: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		// 3a. Not present yet: create
		user = model.User{
			Email:    *email,
			FullName: "Administrator",
			Password: string(hashedPassword),
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("❌ Failed to create admin user: %v", err)
		}
		log.Printf("✅ Admin user created: %s", *email)
		return
	}

	// 3b. Present: reset password
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}
	log.Printf("✅ Success! Password for %s has been reset", *email)
}
