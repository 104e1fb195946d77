package stories

// ---------- requests

// Any client-supplied author field is simply absent from the write model; the
// server always derives the author from the principal.

type CreateStoryRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Summary string `json:"summary"`
	Status  string `json:"status" binding:"omitempty,oneof=ONGOING COMPLETED"`
	TagIDs  []uint `json:"tag_ids"`
}

type UpdateStoryRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=255"`
	Summary *string `json:"summary"`
	Status  *string `json:"status" binding:"omitempty,oneof=ONGOING COMPLETED"`
	TagIDs  *[]uint `json:"tag_ids"` // nil leaves tags untouched, empty list clears
}
