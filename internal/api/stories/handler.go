package stories

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

func parseListParams(c *gin.Context) ListParams {
	var p ListParams
	if v, err := strconv.ParseUint(c.Query("tags"), 10, 64); err == nil {
		p.TagID = uint(v)
	}
	p.Status = c.Query("status")
	p.Search = c.Query("search")
	p.Ordering = c.Query("ordering")
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		p.Page = v
	}
	return p
}

// resolveTags loads the tag set for a write; any unknown id is a validation
// error, never silently dropped.
func resolveTags(tx *gorm.DB, ids []uint) ([]fiction.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	var tags []fiction.Tag
	if err := tx.Where("id IN ?", unique).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, apperr.Validation("unknown tag id")
	}
	return tags, nil
}

func listWith(c *gin.Context, p ListParams) {
	list, total, err := ListStories(database.DB, p)
	if err != nil {
		respond.Err(c, err)
		return
	}

	ids := make([]uint, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	// average ratings are computed for exactly the page items, in one query
	avgs, err := fiction.StoryAverages(database.DB, ids)
	if err != nil {
		respond.Err(c, err)
		return
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	c.JSON(http.StatusOK, toStoryPageDTO(list, avgs, total, page))
}

func List(c *gin.Context) {
	listWith(c, parseListParams(c))
}

// Mine lists only the authenticated principal's stories.
func Mine(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	if err := access.CheckAuthenticated(p); err != nil {
		respond.Err(c, err)
		return
	}
	params := parseListParams(c)
	params.AuthorID = p.ID
	listWith(c, params)
}

func Get(c *gin.Context) {
	id, ok := pathID(c, "storyID")
	if !ok {
		return
	}

	var story fiction.Story
	err := database.DB.Preload("Tags").Preload("Author").First(&story, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respond.Err(c, apperr.NotFound("story not found"))
		return
	}
	if err != nil {
		respond.Err(c, err)
		return
	}

	avg, err := fiction.StoryAverage(database.DB, id)
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, toStoryDTO(story, avg))
}

func Create(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	if err := access.CheckAuthenticated(p); err != nil {
		respond.Err(c, err)
		return
	}

	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = fiction.StatusOngoing
	}

	var story fiction.Story
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, req.TagIDs)
		if err != nil {
			return err
		}
		story = fiction.Story{
			AuthorID: p.ID,
			Title:    req.Title,
			Summary:  req.Summary,
			Status:   status,
			Tags:     tags,
		}
		// story row and story_tags rows commit together or not at all
		return tx.Create(&story).Error
	})
	if err != nil {
		respond.Err(c, err)
		return
	}

	story.Author = nil
	if err := database.DB.Preload("Tags").Preload("Author").First(&story, story.ID).Error; err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStoryDTO(story, 0))
}

func Update(c *gin.Context) {
	id, ok := pathID(c, "storyID")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := access.CheckStoryWrite(database.DB, p, access.KindStory, id); err != nil {
		respond.Err(c, err)
		return
	}

	var req UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var story fiction.Story
		if err := tx.First(&story, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Summary != nil {
			updates["summary"] = *req.Summary
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if len(updates) > 0 {
			if err := tx.Model(&story).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.TagIDs != nil {
			tags, err := resolveTags(tx, *req.TagIDs)
			if err != nil {
				return err
			}
			if tags == nil {
				tags = []fiction.Tag{}
			}
			if err := tx.Model(&story).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respond.Err(c, err)
		return
	}

	var story fiction.Story
	if err := database.DB.Preload("Tags").Preload("Author").First(&story, id).Error; err != nil {
		respond.Err(c, err)
		return
	}
	avg, err := fiction.StoryAverage(database.DB, id)
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, toStoryDTO(story, avg))
}

// Delete removes the story; chapters, comments and ratings go with it via FK
// cascade.
func Delete(c *gin.Context) {
	id, ok := pathID(c, "storyID")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := access.CheckStoryWrite(database.DB, p, access.KindStory, id); err != nil {
		respond.Err(c, err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM story_tags WHERE story_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&fiction.Story{}, id).Error
	})
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
