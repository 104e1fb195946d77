package stories

import (
	"time"

	"fictionhub/internal/domain/fiction"
)

type StoryDTO struct {
	ID            uint          `json:"id"`
	Author        string        `json:"author"`
	Title         string        `json:"title"`
	Summary       string        `json:"summary"`
	Status        string        `json:"status"`
	Tags          []fiction.Tag `json:"tags"`
	AverageRating float64       `json:"average_rating"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type StoryPageDTO struct {
	Count    int64      `json:"count"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Results  []StoryDTO `json:"results"`
}

func toStoryDTO(s fiction.Story, avg float64) StoryDTO {
	author := ""
	if s.Author != nil {
		author = s.Author.Username
	}
	tags := s.Tags
	if tags == nil {
		tags = []fiction.Tag{}
	}
	return StoryDTO{
		ID:            s.ID,
		Author:        author,
		Title:         s.Title,
		Summary:       s.Summary,
		Status:        s.Status,
		Tags:          tags,
		AverageRating: avg,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toStoryPageDTO(list []fiction.Story, avgs map[uint]float64, total int64, page int) StoryPageDTO {
	out := StoryPageDTO{
		Count:    total,
		Page:     page,
		PageSize: PageSize,
		Results:  make([]StoryDTO, 0, len(list)),
	}
	for _, s := range list {
		out.Results = append(out.Results, toStoryDTO(s, avgs[s.ID]))
	}
	return out
}
