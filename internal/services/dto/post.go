package dto

import (
	"time"

	"blogapp_backend/internal/models"
)

// ---------------- Requests ----------------

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,max=150"`
	Description string   `json:"description" validate:"required,max=300"`
	Content     string   `json:"content" validate:"required"`
	Url         string   `json:"url" validate:"required,max=150,is-slug"`
	Image       string   `json:"image" validate:"omitempty,max=255"`
	TagIDs      []string `json:"tag_ids" validate:"omitempty,dive,uuid4"`
	// Only honored for admins. Everyone else starts inactive.
	IsActive bool `json:"is_active"`
}

type EditPostRequest struct {
	Title       string   `json:"title" validate:"required,max=150"`
	Description string   `json:"description" validate:"required,max=300"`
	Content     string   `json:"content" validate:"required"`
	Url         string   `json:"url" validate:"required,max=150,is-slug"`
	Image       string   `json:"image" validate:"omitempty,max=255"`
	TagIDs      []string `json:"tag_ids" validate:"omitempty,dive,uuid4"`
	IsActive    bool     `json:"is_active"`
}

type ListPostsQuery struct {
	Tag  string `form:"tag"`
	Page int    `form:"page"`
}

type MyPostsQuery struct {
	Search string `form:"search"`
	Status string `form:"status" validate:"omitempty,oneof=active inactive"`
	Page   int    `form:"page"`
}

// ---------------- Responses ----------------

type PostSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Url         string    `json:"url"`
	Image       string    `json:"image"`
	IsActive    bool      `json:"is_active"`
	PublishedOn time.Time `json:"published_on"`
	Author      *UserDTO  `json:"author,omitempty"`
	Tags        []TagDTO  `json:"tags"`
}

type PostDetail struct {
	PostSummary
	Content      string       `json:"content"`
	LikeCount    int64        `json:"like_count"`
	LikedByUser  bool         `json:"liked_by_user"`
	CommentCount int64        `json:"comment_count"`
	Comments     []CommentDTO `json:"comments"`
}

type PostListResponse struct {
	Posts      []PostSummary `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func PostToSummary(post *models.Post) PostSummary {
	summary := PostSummary{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Url:         post.Url,
		Image:       post.Image,
		IsActive:    post.IsActive,
		PublishedOn: post.PublishedOn,
		Tags:        TagsToDTOs(post.Tags),
	}
	if post.User != nil {
		author := UserToDTO(post.User)
		summary.Author = &author
	}
	return summary
}

func PostsToSummaries(posts []models.Post) []PostSummary {
	summaries := make([]PostSummary, 0, len(posts))
	for i := range posts {
		summaries = append(summaries, PostToSummary(&posts[i]))
	}
	return summaries
}
