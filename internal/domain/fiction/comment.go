package fiction

import (
	"time"

	"fictionhub/internal/domain/users"
)

type Comment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ChapterID uint `gorm:"not null;index" json:"chapter"`

	AuthorID uint        `gorm:"not null;index" json:"-"`
	Author   *users.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"-"`

	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}
