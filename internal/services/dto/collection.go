package dto

import (
	"time"

	"blogapp_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateCollectionRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsOpen      *bool  `json:"is_open"`
}

type EditCollectionRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsOpen      *bool  `json:"is_open"`
}

type CollectionPostRequest struct {
	PostID string `json:"post_id" validate:"required,uuid4"`
}

type ListCollectionsQuery struct {
	Sort string `form:"sort" validate:"omitempty,is-collection-sort"`
	Page int    `form:"page"`
}

// ---------------- Responses ----------------

type CollectionDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsOpen      bool      `json:"is_open"`
	PostCount   int       `json:"post_count"`
	Creator     *UserDTO  `json:"creator,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CollectionDetail struct {
	CollectionDTO
	Posts []PostSummary `json:"posts"`
}

type CollectionListResponse struct {
	Collections []CollectionDTO `json:"collections"`
	Pagination  Pagination      `json:"pagination"`
}

func CollectionToDTO(collection *models.Collection) CollectionDTO {
	out := CollectionDTO{
		ID:          collection.ID,
		Title:       collection.Title,
		Description: collection.Description,
		IsOpen:      collection.IsOpen,
		PostCount:   len(collection.Posts),
		CreatedAt:   collection.CreatedAt,
		UpdatedAt:   collection.UpdatedAt,
	}
	if collection.Creator != nil {
		creator := UserToDTO(collection.Creator)
		out.Creator = &creator
	}
	return out
}
