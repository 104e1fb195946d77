package database

import (
	"log"
	"os"

	"fictionhub/internal/domain/fiction"
	"fictionhub/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(db); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("Connected and migrated successfully")
}

// Migrate creates the schema on any gorm DB; tests run it against in-memory
// sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&fiction.Tag{},
		&fiction.Story{},
		&fiction.Chapter{},
		&fiction.Comment{},
		&fiction.Rating{},
	)
}
