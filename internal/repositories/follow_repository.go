package repositories

import (
	"errors"

	"blogapp_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrFollowNotFound   = errors.New("follow relation not found")
)

type FollowRepository interface {
	Create(followerID, followingID string) error
	Delete(followerID, followingID string) error
	Exists(followerID, followingID string) (bool, error)

	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)

	// FollowingIDs returns the ids of users the given user follows.
	FollowingIDs(userID string) ([]string, error)
	// FollowerIDs returns the ids of users following the given user.
	FollowerIDs(userID string) ([]string, error)

	// MutualIDs returns ids present in both the following and follower
	// sets of the given user, resolved in a single query. The user's own
	// id is never part of the result.
	MutualIDs(userID string) ([]string, error)

	FindFollowers(userID string) ([]models.User, error)
	FindFollowing(userID string) ([]models.User, error)
}

type FollowRepositoryImpl struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &FollowRepositoryImpl{db: db}
}

func (r *FollowRepositoryImpl) Create(followerID, followingID string) error {
	exists, err := r.Exists(followerID, followingID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFollowing
	}
	return r.db.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error
}

func (r *FollowRepositoryImpl) Delete(followerID, followingID string) error {
	result := r.db.Delete(&models.Follow{}, "follower_id = ? AND following_id = ?", followerID, followingID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (r *FollowRepositoryImpl) Exists(followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *FollowRepositoryImpl) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FollowRepositoryImpl) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FollowRepositoryImpl) FollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *FollowRepositoryImpl) FollowerIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *FollowRepositoryImpl) MutualIDs(userID string) ([]string, error) {
	var ids []string
	// A self-follow row (legacy data, direct insert) would satisfy both
	// sides, so the user's own id is excluded explicitly.
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Where("following_id <> ?", userID).
		Where("following_id IN (?)",
			r.db.Model(&models.Follow{}).Select("follower_id").Where("following_id = ?", userID)).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *FollowRepositoryImpl) FindFollowers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *FollowRepositoryImpl) FindFollowing(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}
