package comments

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
)

type CreateCommentRequest struct {
	ChapterID uint   `json:"chapter"` // flat route only; nested routes take it from the path
	Content   string `json:"content" binding:"required"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	ChapterID uint      `json:"chapter"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentDTO(cm fiction.Comment) CommentDTO {
	author := ""
	if cm.Author != nil {
		author = cm.Author.Username
	}
	return CommentDTO{
		ID:        cm.ID,
		Author:    author,
		ChapterID: cm.ChapterID,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
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

func listByChapter(c *gin.Context, chapterID uint) {
	var list []fiction.Comment
	err := database.DB.
		Preload("Author").
		Where("chapter_id = ?", chapterID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	if err != nil {
		respond.Err(c, err)
		return
	}

	out := make([]CommentDTO, 0, len(list))
	for _, cm := range list {
		out = append(out, toCommentDTO(cm))
	}
	c.JSON(http.StatusOK, out)
}

// ListNested serves GET /stories/:storyID/chapters/:chapterID/comments.
func ListNested(c *gin.Context) {
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
	listByChapter(c, chapterID)
}

// List serves the flat GET /comments, optionally filtered by ?chapter=.
func List(c *gin.Context) {
	if q := c.Query("chapter"); q != "" {
		chapterID, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			respond.Err(c, apperr.Validation("invalid chapter id"))
			return
		}
		listByChapter(c, uint(chapterID))
		return
	}

	var list []fiction.Comment
	if err := database.DB.Preload("Author").Order("id ASC").Find(&list).Error; err != nil {
		respond.Err(c, err)
		return
	}
	out := make([]CommentDTO, 0, len(list))
	for _, cm := range list {
		out = append(out, toCommentDTO(cm))
	}
	c.JSON(http.StatusOK, out)
}

func Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cm fiction.Comment
	err := database.DB.Preload("Author").First(&cm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respond.Err(c, apperr.NotFound("comment not found"))
		return
	}
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentDTO(cm))
}

func create(c *gin.Context, chapterID uint, content string) {
	p := middleware.CurrentPrincipal(c)
	if err := access.CheckAuthenticated(p); err != nil {
		respond.Err(c, err)
		return
	}

	cm := fiction.Comment{
		ChapterID: chapterID,
		AuthorID:  p.ID,
		Content:   content,
	}
	if err := database.DB.Create(&cm).Error; err != nil {
		respond.Err(c, err)
		return
	}

	cm.Author = nil
	if err := database.DB.Preload("Author").First(&cm, cm.ID).Error; err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentDTO(cm))
}

// CreateNested serves POST /stories/:storyID/chapters/:chapterID/comments.
// The chapter must belong to the story named in the path; a mismatch is a
// validation error and nothing is persisted.
func CreateNested(c *gin.Context) {
	storyID, ok := pathID(c, "storyID")
	if !ok {
		return
	}
	chapterID, ok := pathID(c, "chapterID")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ChapterID != 0 && req.ChapterID != chapterID {
		respond.Err(c, apperr.Validation("chapter does not belong to this story"))
		return
	}

	if err := access.ChapterInStory(database.DB, chapterID, storyID); err != nil {
		respond.Err(c, err)
		return
	}
	create(c, chapterID, req.Content)
}

// Create serves the flat POST /comments with the chapter referenced in the
// body.
func Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ChapterID == 0 {
		respond.Err(c, apperr.Validation("chapter is required"))
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
	create(c, req.ChapterID, req.Content)
}

// Delete allows a commenter to remove their own comment; story ownership does
// not apply here.
func Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var cm fiction.Comment
	err := database.DB.First(&cm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respond.Err(c, apperr.NotFound("comment not found"))
		return
	}
	if err != nil {
		respond.Err(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := access.CheckRecordOwner(p, cm.AuthorID); err != nil {
		respond.Err(c, err)
		return
	}

	if err := database.DB.Delete(&cm).Error; err != nil {
		respond.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
