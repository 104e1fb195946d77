package chapters

// The parent story always comes from the path; a body story_id is accepted
// only when it agrees with the path and rejected otherwise.

type CreateChapterRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content"`
	Position *uint  `json:"position"`
	StoryID  *uint  `json:"story_id"`
}

type UpdateChapterRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Content  *string `json:"content"`
	Position *uint   `json:"position"`
}
