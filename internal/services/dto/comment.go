package dto

import (
	"time"

	"blogapp_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateCommentRequest struct {
	Text     string `json:"text" validate:"required,max=2000"`
	ParentID string `json:"parent_id" validate:"omitempty,uuid4"`
}

// ---------------- Responses ----------------

type CommentDTO struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	PublishedOn time.Time    `json:"published_on"`
	Author      UserDTO      `json:"author"`
	Replies     []CommentDTO `json:"replies,omitempty"`
}

func CommentToDTO(comment *models.Comment) CommentDTO {
	out := CommentDTO{
		ID:          comment.ID,
		Text:        comment.Text,
		PublishedOn: comment.PublishedOn,
	}
	if comment.User != nil {
		out.Author = UserToDTO(comment.User)
	}
	for i := range comment.Replies {
		out.Replies = append(out.Replies, CommentToDTO(&comment.Replies[i]))
	}
	return out
}

// ProfileCommentDTO is a comment as shown on its author's profile page,
// carrying enough of the commented post to render a link.
type ProfileCommentDTO struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	PublishedOn time.Time `json:"published_on"`
	PostTitle   string    `json:"post_title"`
	PostUrl     string    `json:"post_url"`
}

func CommentsToProfileDTOs(comments []models.Comment) []ProfileCommentDTO {
	out := make([]ProfileCommentDTO, 0, len(comments))
	for i := range comments {
		item := ProfileCommentDTO{
			ID:          comments[i].ID,
			Text:        comments[i].Text,
			PublishedOn: comments[i].PublishedOn,
		}
		if comments[i].Post != nil {
			item.PostTitle = comments[i].Post.Title
			item.PostUrl = comments[i].Post.Url
		}
		out = append(out, item)
	}
	return out
}

func CommentsToDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		out = append(out, CommentToDTO(&comments[i]))
	}
	return out
}
