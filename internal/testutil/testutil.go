// Package testutil provides the shared database fixture for package tests.
package testutil

import (
	"fmt"
	"testing"

	"fictionhub/database"
	"fictionhub/internal/domain/fiction"
	"fictionhub/internal/domain/users"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory sqlite database with foreign keys enforced,
// so cascade deletes and unique constraints behave as in the production
// schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, username string) users.User {
	t.Helper()
	u := users.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func SeedStory(t *testing.T, db *gorm.DB, authorID uint, title string) fiction.Story {
	t.Helper()
	s := fiction.Story{
		AuthorID: authorID,
		Title:    title,
		Summary:  "summary of " + title,
		Status:   fiction.StatusOngoing,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed story %s: %v", title, err)
	}
	return s
}

func SeedChapter(t *testing.T, db *gorm.DB, storyID uint, position uint) fiction.Chapter {
	t.Helper()
	ch := fiction.Chapter{
		StoryID:  storyID,
		Title:    fmt.Sprintf("Chapter %d", position),
		Content:  "content",
		Position: position,
	}
	if err := db.Create(&ch).Error; err != nil {
		t.Fatalf("seed chapter: %v", err)
	}
	return ch
}

func SeedRating(t *testing.T, db *gorm.DB, chapterID, authorID, value uint) fiction.Rating {
	t.Helper()
	r := fiction.Rating{
		ChapterID: chapterID,
		AuthorID:  authorID,
		Value:     value,
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seed rating: %v", err)
	}
	return r
}

func SeedComment(t *testing.T, db *gorm.DB, chapterID, authorID uint, content string) fiction.Comment {
	t.Helper()
	cm := fiction.Comment{
		ChapterID: chapterID,
		AuthorID:  authorID,
		Content:   content,
	}
	if err := db.Create(&cm).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return cm
}
