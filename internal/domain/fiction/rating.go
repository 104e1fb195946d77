package fiction

import (
	"time"

	"fictionhub/internal/domain/users"
)

// At most one rating per (author, chapter); resubmission replaces the value.
type Rating struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ChapterID uint `gorm:"not null;uniqueIndex:idx_ratings_author_chapter,priority:2" json:"chapter"`

	AuthorID uint        `gorm:"not null;uniqueIndex:idx_ratings_author_chapter,priority:1" json:"-"`
	Author   *users.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"-"`

	Value uint `gorm:"not null" json:"value"`

	CreatedAt time.Time `json:"created_at"`
}
