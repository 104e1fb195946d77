package fiction

import (
	"gorm.io/gorm"
)

// Rating aggregates are computed live from the ratings table; nothing is
// denormalized. An empty population yields 0, not null, so the field keeps a
// stable numeric type across all responses.

func ChapterAverage(db *gorm.DB, chapterID uint) (float64, error) {
	var avg float64
	err := db.Model(&Rating{}).
		Where("chapter_id = ?", chapterID).
		Select("COALESCE(AVG(value), 0)").
		Scan(&avg).Error
	return avg, err
}

// StoryAverage averages the union of ratings across all chapters of the story,
// so chapters with more ratings weigh proportionally more. It is NOT the mean
// of per-chapter means.
func StoryAverage(db *gorm.DB, storyID uint) (float64, error) {
	var avg float64
	err := db.Model(&Rating{}).
		Joins("JOIN chapters ON chapters.id = ratings.chapter_id").
		Where("chapters.story_id = ?", storyID).
		Select("COALESCE(AVG(ratings.value), 0)").
		Scan(&avg).Error
	return avg, err
}

// StoryAverages batch-computes story averages for one listing page in a single
// grouped query. Stories without ratings are present in the result with 0.
func StoryAverages(db *gorm.DB, storyIDs []uint) (map[uint]float64, error) {
	out := make(map[uint]float64, len(storyIDs))
	for _, id := range storyIDs {
		out[id] = 0
	}
	if len(storyIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		StoryID uint
		Avg     float64
	}
	err := db.Model(&Rating{}).
		Joins("JOIN chapters ON chapters.id = ratings.chapter_id").
		Where("chapters.story_id IN ?", storyIDs).
		Group("chapters.story_id").
		Select("chapters.story_id AS story_id, AVG(ratings.value) AS avg").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.StoryID] = r.Avg
	}
	return out, nil
}
