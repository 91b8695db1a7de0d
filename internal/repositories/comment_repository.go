package repositories

import (
	"errors"

	"blogapp_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	FindByID(id string) (*models.Comment, error)
	FindByPost(postID string) ([]models.Comment, error)
	// FindRecentByUser returns the user's surviving comments, newest
	// first, with the commented post attached.
	FindRecentByUser(userID string, limit int) ([]models.Comment, error)
	Create(comment *models.Comment) error
	// SoftDelete flags a comment as deleted so replies stay attached.
	SoftDelete(commentID string) error
	CountByPost(postID string) (int64, error)
}

type CommentRepositoryImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) FindByID(id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) FindByPost(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("User").
		Preload("Replies", "is_deleted = ?", false).
		Preload("Replies.User").
		Where("post_id = ? AND parent_id IS NULL AND is_deleted = ?", postID, false).
		Order("published_on ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepositoryImpl) FindRecentByUser(userID string, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("Post").
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("published_on DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepositoryImpl) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepositoryImpl) SoftDelete(commentID string) error {
	result := r.db.Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) CountByPost(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&count).Error
	return count, err
}
