package dto

import "blogapp_backend/internal/models"

// ---------------- Requests ----------------

type CreateTagRequest struct {
	Text string `json:"text" validate:"required,max=40"`
}

type ListTagsQuery struct {
	Sort string `form:"sort" validate:"omitempty,oneof=newest popular"`
	Page int    `form:"page"`
}

// ---------------- Responses ----------------

type TagDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Url  string `json:"url"`
}

type TagWithCountDTO struct {
	TagDTO
	PostCount int64 `json:"post_count"`
}

type TagListResponse struct {
	Tags       []TagWithCountDTO `json:"tags"`
	Pagination Pagination        `json:"pagination"`
}

func TagToDTO(tag *models.Tag) TagDTO {
	return TagDTO{ID: tag.ID, Text: tag.Text, Url: tag.Url}
}

func TagsToDTOs(tags []models.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for i := range tags {
		out = append(out, TagToDTO(&tags[i]))
	}
	return out
}
