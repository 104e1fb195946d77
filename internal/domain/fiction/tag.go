package fiction

// Tag names are matched case-sensitively; "Fantasy" and "fantasy" are two tags.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex:idx_tags_name" json:"name"`
}
