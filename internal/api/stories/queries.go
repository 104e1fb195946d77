package stories

import (
	"fmt"
	"strings"

	"fictionhub/internal/domain/fiction"

	"gorm.io/gorm"
)

const PageSize = 20

type ListParams struct {
	TagID    uint   // 0 = no tag filter
	Status   string // "" = no status filter
	Search   string // case-insensitive contains over title, summary, author name
	Ordering string // "created_at" | "updated_at" | "title", "-" prefix for desc
	AuthorID uint   // 0 = all authors; set for /stories/mine
	Page     int    // 1-based
}

var orderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// storyFilter applies the conjunctive filter set. Called once per use so count
// and page queries never share gorm statement state.
func storyFilter(db *gorm.DB, p ListParams) *gorm.DB {
	q := db.Model(&fiction.Story{})
	if p.TagID != 0 {
		q = q.Joins("JOIN story_tags ON story_tags.story_id = stories.id").
			Where("story_tags.tag_id = ?", p.TagID)
	}
	if p.Status != "" {
		q = q.Where("stories.status = ?", p.Status)
	}
	if p.AuthorID != 0 {
		q = q.Where("stories.author_id = ?", p.AuthorID)
	}
	if p.Search != "" {
		pat := "%" + strings.ToLower(p.Search) + "%"
		q = q.Joins("JOIN users ON users.id = stories.author_id").
			Where("LOWER(stories.title) LIKE ? OR LOWER(stories.summary) LIKE ? OR LOWER(users.username) LIKE ?",
				pat, pat, pat)
	}
	return q
}

// orderClause whitelists the sort column and always appends the id tie-break;
// primary keys like created_at are not unique, and without the tie-break
// pagination can duplicate or skip rows. Unknown ordering values fall back to
// the default.
func orderClause(ordering string) string {
	col := "created_at"
	dir := "DESC"
	if ordering != "" {
		name := strings.TrimPrefix(ordering, "-")
		if orderColumns[name] {
			col = name
			if name == ordering {
				dir = "ASC"
			}
		}
	}
	return fmt.Sprintf("stories.%s %s, stories.id DESC", col, dir)
}

// ListStories returns one page of stories plus the total matching count.
func ListStories(db *gorm.DB, p ListParams) ([]fiction.Story, int64, error) {
	var total int64
	if err := storyFilter(db, p).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := p.Page
	if page < 1 {
		page = 1
	}

	var out []fiction.Story
	err := storyFilter(db, p).
		Order(orderClause(p.Ordering)).
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Preload("Tags").
		Preload("Author").
		Find(&out).Error
	return out, total, err
}
