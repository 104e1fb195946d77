package ratings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fictionhub/database"
	"fictionhub/internal/api/respond"
	"fictionhub/internal/app/http/middleware"
	"fictionhub/internal/domain/access"
	"fictionhub/internal/domain/apperr"
	"fictionhub/internal/domain/fiction"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateRatingRequest struct {
	ChapterID uint  `json:"chapter" binding:"required"`
	Value     *uint `json:"value" binding:"required"` // pointer so 0 is a valid rating
}

type RatingDTO struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	ChapterID uint      `json:"chapter"`
	Value     uint      `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

func toRatingDTO(r fiction.Rating) RatingDTO {
	author := ""
	if r.Author != nil {
		author = r.Author.Username
	}
	return RatingDTO{
		ID:        r.ID,
		Author:    author,
		ChapterID: r.ChapterID,
		Value:     r.Value,
		CreatedAt: r.CreatedAt,
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respond.Err(c, apperr.Validation("invalid id"))
		return 0, false
	}
	return uint(id), true
}

func List(c *gin.Context) {
	q := database.DB.Preload("Author").Order("id ASC")
	if v := c.Query("chapter"); v != "" {
		chapterID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			respond.Err(c, apperr.Validation("invalid chapter id"))
			return
		}
		q = q.Where("chapter_id = ?", uint(chapterID))
	}

	var list []fiction.Rating
	if err := q.Find(&list).Error; err != nil {
		respond.Err(c, err)
		return
	}
	out := make([]RatingDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toRatingDTO(r))
	}
	c.JSON(http.StatusOK, out)
}

// Create upserts on the (author, chapter) uniqueness key: a resubmission
// replaces the prior value and refreshes created_at instead of erroring, so
// idempotent retries and concurrent submits never surface a conflict.
func Create(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	if err := access.CheckAuthenticated(p); err != nil {
		respond.Err(c, err)
		return
	}

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists uint
	err := database.DB.Model(&fiction.Chapter{}).
		Where("id = ?", req.ChapterID).
		Select("id").
		Take(&exists).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respond.Err(c, apperr.Validation("unknown chapter id"))
		return
	}
	if err != nil {
		respond.Err(c, err)
		return
	}

	now := time.Now()
	rating := fiction.Rating{
		ChapterID: req.ChapterID,
		AuthorID:  p.ID,
		Value:     *req.Value,
		CreatedAt: now,
	}
	err = database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "author_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      *req.Value,
			"created_at": now,
		}),
	}).Create(&rating).Error
	if err != nil {
		respond.Err(c, err)
		return
	}

	// re-read the canonical row; on replace the insert id above is not the
	// stored one
	var stored fiction.Rating
	err = database.DB.Preload("Author").
		Where("author_id = ? AND chapter_id = ?", p.ID, req.ChapterID).
		First(&stored).Error
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRatingDTO(stored))
}

func Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var rating fiction.Rating
	err := database.DB.First(&rating, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respond.Err(c, apperr.NotFound("rating not found"))
		return
	}
	if err != nil {
		respond.Err(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := access.CheckRecordOwner(p, rating.AuthorID); err != nil {
		respond.Err(c, err)
		return
	}

	if err := database.DB.Delete(&rating).Error; err != nil {
		respond.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ByChapter serves GET /ratings/chapter/:chapterID.
func ByChapter(c *gin.Context) {
	chapterID, ok := pathID(c, "chapterID")
	if !ok {
		return
	}
	avg, err := fiction.ChapterAverage(database.DB, chapterID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter": chapterID, "average_rating": avg})
}

// ByStory serves GET /ratings/story/:storyID/average.
func ByStory(c *gin.Context) {
	storyID, ok := pathID(c, "storyID")
	if !ok {
		return
	}
	avg, err := fiction.StoryAverage(database.DB, storyID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"story": storyID, "average_rating": avg})
}
