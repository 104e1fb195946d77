package chapters

import (
	"errors"
	"net/http"
	"strconv"

	"fictionhub/database"
	"fictionhub/internal/api/respond"
	"fictionhub/internal/app/http/middleware"
	"fictionhub/internal/domain/access"
	"fictionhub/internal/domain/apperr"
	"fictionhub/internal/domain/fiction"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respond.Err(c, apperr.Validation("invalid id"))
		return 0, false
	}
	return uint(id), true
}

func storyExists(db *gorm.DB, storyID uint) error {
	var id uint
	err := db.Model(&fiction.Story{}).Where("id = ?", storyID).Select("id").Take(&id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("story not found")
	}
	return err
}

func List(c *gin.Context) {
	storyID, ok := pathID(c, "storyID")
	if !ok {
		return
	}
	if err := storyExists(database.DB, storyID); err != nil {
		respond.Err(c, err)
		return
	}

	var chapters []fiction.Chapter
	err := database.DB.
		Where("story_id = ?", storyID).
		Order("position ASC, id ASC").
		Find(&chapters).Error
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, chapters)
}

func Get(c *gin.Context) {
	storyID, ok := pathID(c, "storyID")
	if !ok {
		return
	}
	chapterID, ok := pathID(c, "chapterID")
	if !ok {
		return
	}

	var chapter fiction.Chapter
	err := database.DB.Where("id = ? AND story_id = ?", chapterID, storyID).First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respond.Err(c, apperr.NotFound("chapter not found"))
		return
	}
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func Create(c *gin.Context) {
	storyID, ok := pathID(c, "storyID")
	if !ok {
		return
	}

	var req CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StoryID != nil && *req.StoryID != storyID {
		respond.Err(c, apperr.Validation("story_id conflicts with the story in the path"))
		return
	}

	if err := storyExists(database.DB, storyID); err != nil {
		respond.Err(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := access.CheckStoryWrite(database.DB, p, access.KindStory, storyID); err != nil {
		respond.Err(c, err)
		return
	}

	position := uint(0)
	if req.Position != nil {
		position = *req.Position
	}
	chapter := fiction.Chapter{
		StoryID:  storyID,
		Title:    req.Title,
		Content:  req.Content,
		Position: position,
	}
	if err := database.DB.Create(&chapter).Error; err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

func Update(c *gin.Context) {
	storyID, ok := pathID(c, "storyID")
	if !ok {
		return
	}
	chapterID, ok := pathID(c, "chapterID")
	if !ok {
		return
	}

	if err := access.ChapterInStory(database.DB, chapterID, storyID); err != nil {
		respond.Err(c, err)
		return
	}
	p := middleware.CurrentPrincipal(c)
	if err := access.CheckStoryWrite(database.DB, p, access.KindChapter, chapterID); err != nil {
		respond.Err(c, err)
		return
	}

	var req UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}

	var chapter fiction.Chapter
	if err := database.DB.First(&chapter, chapterID).Error; err != nil {
		respond.Err(c, apperr.NotFound("chapter not found"))
		return
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&chapter).Updates(updates).Error; err != nil {
			respond.Err(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, chapter)
}

func Delete(c *gin.Context) {
	storyID, ok := pathID(c, "storyID")
	if !ok {
		return
	}
	chapterID, ok := pathID(c, "chapterID")
	if !ok {
		return
	}

	if err := access.ChapterInStory(database.DB, chapterID, storyID); err != nil {
		respond.Err(c, err)
		return
	}
	p := middleware.CurrentPrincipal(c)
	if err := access.CheckStoryWrite(database.DB, p, access.KindChapter, chapterID); err != nil {
		respond.Err(c, err)
		return
	}

	if err := database.DB.Delete(&fiction.Chapter{}, chapterID).Error; err != nil {
		respond.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
