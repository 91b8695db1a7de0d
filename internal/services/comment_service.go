package services

import (
	"errors"
	"strings"
	"time"

	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

type CommentService interface {
	// Create adds a comment, or a reply when ParentID is set. The post
	// author is notified of new comments, the parent comment's author of
	// replies. Nobody is notified about their own activity.
	Create(postID, userID string, req *dto.CreateCommentRequest) (*dto.CommentDTO, error)

	// Delete soft-deletes a comment. Allowed for its author, the post
	// author and admins.
	Delete(commentID, userID string, isAdmin bool) error

	ListByPost(postID string) ([]dto.CommentDTO, error)
}

type commentService struct {
	commentRepo     repositories.CommentRepository
	postRepo        repositories.PostRepository
	userRepo        repositories.UserRepository
	notificationSvc NotificationService
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notificationSvc NotificationService,
) CommentService {
	return &commentService{
		commentRepo:     commentRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *commentService) Create(postID, userID string, req *dto.CreateCommentRequest) (*dto.CommentDTO, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.ValidationError(map[string]string{"text": "Comment text cannot be empty"})
	}

	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !post.IsActive {
		return nil, apperrors.ErrInvalidOperation("comment", "Cannot comment on an unpublished post")
	}

	comment := &models.Comment{
		Text:        text,
		PublishedOn: time.Now().UTC(),
		PostID:      postID,
		UserID:      userID,
	}

	var parent *models.Comment
	if req.ParentID != "" {
		parent, err = s.commentRepo.FindByID(req.ParentID)
		if err != nil {
			if errors.Is(err, repositories.ErrCommentNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if parent.PostID != postID {
			return nil, apperrors.ErrInvalidOperation("comment", "Parent comment belongs to another post")
		}
		// Replies stay one level deep. Replying to a reply attaches to
		// the top-level comment.
		parentID := parent.ID
		if parent.ParentID != nil {
			parentID = *parent.ParentID
		}
		comment.ParentID = &parentID
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notify(post, parent, userID)

	stored, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := dto.CommentToDTO(stored)
	return &out, nil
}

func (s *commentService) notify(post *models.Post, parent *models.Comment, authorID string) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return
	}

	if parent != nil {
		if parent.UserID != authorID {
			message, linkUrl := ReplyNotification(author.Name, post.Url)
			s.notificationSvc.Notify(parent.UserID, NotificationTypeNewReply, message, linkUrl,
				map[string]interface{}{"post_id": post.ID, "comment_id": parent.ID})
		}
		return
	}

	if post.UserID != authorID {
		message, linkUrl := CommentNotification(author.Name, post.Title, post.Url)
		s.notificationSvc.Notify(post.UserID, NotificationTypeNewComment, message, linkUrl,
			map[string]interface{}{"post_id": post.ID})
	}
}

func (s *commentService) Delete(commentID, userID string, isAdmin bool) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if comment.UserID != userID && !isAdmin {
		post, err := s.postRepo.FindByID(comment.PostID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if post.UserID != userID {
			return apperrors.ErrInsufficientPermissions
		}
	}

	if err := s.commentRepo.SoftDelete(commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *commentService) ListByPost(postID string) ([]dto.CommentDTO, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	comments, err := s.commentRepo.FindByPost(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.CommentsToDTOs(comments), nil
}
