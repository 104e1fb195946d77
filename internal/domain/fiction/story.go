package fiction

import (
	"time"

	"fictionhub/internal/domain/users"
)

const (
	StatusOngoing   = "ONGOING"
	StatusCompleted = "COMPLETED"
)

func ValidStatus(s string) bool {
	return s == StatusOngoing || s == StatusCompleted
}

type Story struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// AuthorID is fixed at creation and never reassigned.
	AuthorID uint        `gorm:"not null;index" json:"-"`
	Author   *users.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"-"`

	Title   string `gorm:"size:255;not null" json:"title"`
	Summary string `gorm:"type:text" json:"summary"`
	Status  string `gorm:"size:10;not null;default:'ONGOING'" json:"status"`

	Tags     []Tag     `gorm:"many2many:story_tags;constraint:OnDelete:CASCADE;" json:"tags,omitempty"`
	Chapters []Chapter `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
