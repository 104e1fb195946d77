// Package access resolves write permission over the nested fiction hierarchy.
//
// No child record stores the enclosing story's author, so every ownership
// check walks Comment/Rating → Chapter → Story → author. The walk is always a
// single indexed join query per check, parameterized by entity kind, never one
// fetch per hop.
package access

import (
	"errors"

	"fictionhub/internal/domain/apperr"
	"fictionhub/internal/domain/fiction"

	"gorm.io/gorm"
)

type Kind string

const (
	KindStory   Kind = "story"
	KindChapter Kind = "chapter"
	KindComment Kind = "comment"
	KindRating  Kind = "rating"
)

// OwningAuthor resolves the author of the story enclosing the given entity.
func OwningAuthor(db *gorm.DB, kind Kind, id uint) (uint, error) {
	var authorID uint
	var err error

	switch kind {
	case KindStory:
		err = db.Model(&fiction.Story{}).
			Where("stories.id = ?", id).
			Select("stories.author_id").
			Take(&authorID).Error
	case KindChapter:
		err = db.Model(&fiction.Chapter{}).
			Joins("JOIN stories ON stories.id = chapters.story_id").
			Where("chapters.id = ?", id).
			Select("stories.author_id").
			Take(&authorID).Error
	case KindComment:
		err = db.Model(&fiction.Comment{}).
			Joins("JOIN chapters ON chapters.id = comments.chapter_id").
			Joins("JOIN stories ON stories.id = chapters.story_id").
			Where("comments.id = ?", id).
			Select("stories.author_id").
			Take(&authorID).Error
	case KindRating:
		err = db.Model(&fiction.Rating{}).
			Joins("JOIN chapters ON chapters.id = ratings.chapter_id").
			Joins("JOIN stories ON stories.id = chapters.story_id").
			Where("ratings.id = ?", id).
			Select("stories.author_id").
			Take(&authorID).Error
	default:
		return 0, apperr.Validation("unknown entity kind")
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.NotFound(string(kind) + " not found")
	}
	return authorID, err
}

// CheckAuthenticated gates operations that merely require a login: creating
// stories, comments and ratings.
func CheckAuthenticated(p Principal) error {
	if !p.Authenticated() {
		return apperr.Unauthenticated("Authentication required")
	}
	return nil
}

// CheckStoryWrite permits update/delete on a story or chapter only to the
// author of the enclosing story. Reads are always open, so there is no read
// counterpart.
func CheckStoryWrite(db *gorm.DB, p Principal, kind Kind, id uint) error {
	if err := CheckAuthenticated(p); err != nil {
		return err
	}
	authorID, err := OwningAuthor(db, kind, id)
	if err != nil {
		return err
	}
	if authorID != p.ID {
		return apperr.Forbidden("Only the story author may modify this")
	}
	return nil
}

// CheckRecordOwner permits update/delete on a comment or rating only to the
// principal that created it (self-ownership, not story ownership).
func CheckRecordOwner(p Principal, recordAuthorID uint) error {
	if err := CheckAuthenticated(p); err != nil {
		return err
	}
	if recordAuthorID != p.ID {
		return apperr.Forbidden("Not the owner of this record")
	}
	return nil
}

// ChapterInStory verifies that the chapter exists and belongs to the story
// named in the request path. A mismatch is a validation error, distinct from
// any permission outcome.
func ChapterInStory(db *gorm.DB, chapterID, storyID uint) error {
	var ownerStoryID uint
	err := db.Model(&fiction.Chapter{}).
		Where("chapters.id = ?", chapterID).
		Select("chapters.story_id").
		Take(&ownerStoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("chapter not found")
	}
	if err != nil {
		return err
	}
	if ownerStoryID != storyID {
		return apperr.Validation("chapter does not belong to this story")
	}
	return nil
}
