package tags

import (
	"errors"
	"net/http"
	"strconv"

	"fictionhub/database"
	"fictionhub/internal/api/respond"
	"fictionhub/internal/domain/apperr"
	"fictionhub/internal/domain/fiction"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type tagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respond.Err(c, apperr.Validation("invalid id"))
		return 0, false
	}
	return uint(id), true
}

func ListTags(c *gin.Context) {
	var tags []fiction.Tag
	if err := database.DB.Order("id ASC").Find(&tags).Error; err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var tag fiction.Tag
	if err := database.DB.First(&tag, id).Error; err != nil {
		respond.Err(c, apperr.NotFound("tag not found"))
		return
	}
	c.JSON(http.StatusOK, tag)
}

func CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag := fiction.Tag{Name: req.Name}
	if err := database.DB.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond.Err(c, apperr.Conflict("tag name already exists"))
			return
		}
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func UpdateTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tag fiction.Tag
	if err := database.DB.First(&tag, id).Error; err != nil {
		respond.Err(c, apperr.NotFound("tag not found"))
		return
	}

	if err := database.DB.Model(&tag).Update("name", req.Name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond.Err(c, apperr.Conflict("tag name already exists"))
			return
		}
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag hard-deletes the tag and its story associations; the stories
// themselves are untouched.
func DeleteTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var tag fiction.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("tag not found")
			}
			return err
		}
		if err := tx.Exec("DELETE FROM story_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
