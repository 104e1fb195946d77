package fiction

import (
	"time"
)

// Chapter positions are not required to be unique or gapless within a story;
// listings order by (position, id) ascending.
type Chapter struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StoryID uint `gorm:"not null;index:idx_chapters_story_position,priority:1" json:"story_id"`

	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Position uint   `gorm:"not null;default:0;index:idx_chapters_story_position,priority:2" json:"position"`

	Comments []Comment `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;" json:"-"`
	Ratings  []Rating  `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
