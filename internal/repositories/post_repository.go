package repositories

import (
	"errors"
	"strings"

	"blogapp_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrSlugTaken      = errors.New("post url already in use")
	ErrAlreadyLiked   = errors.New("post already liked")
	ErrLikeNotFound   = errors.New("like not found")
)

// PostFilter narrows the authenticated "my posts" listing.
type PostFilter struct {
	UserID   string // empty for admins, who see everything
	Search   string
	Status   string // "active", "inactive" or empty
	Page     int
	PageSize int
}

type PostRepository interface {
	FindByID(id string) (*models.Post, error)
	FindBySlug(url string) (*models.Post, error)
	// FindActiveBySlug loads the full public detail view: author, tags and
	// the comment thread with comment authors.
	FindActiveBySlug(url string) (*models.Post, error)
	SlugExists(url, excludePostID string) (bool, error)

	FindActive(tagSlug string, limit, offset int) ([]models.Post, int64, error)
	FindFiltered(filter PostFilter) ([]models.Post, int64, error)
	FindRecentActive(limit int) ([]models.Post, error)

	Create(post *models.Post, tagIDs []string) error
	Update(post *models.Post, tagIDs []string) error
	SetActive(postID string, isActive bool) error
	Delete(postID string) error

	// Like operations
	Like(postID, userID string) error
	Unlike(postID, userID string) error
	CountLikes(postID string) (int64, error)
	HasLiked(postID, userID string) (bool, error)
}

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Tags").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) FindBySlug(url string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Tags").First(&post, "url = ?", url).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) FindActiveBySlug(url string) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("User").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ? AND parent_id IS NULL", false).Order("published_on ASC")
		}).
		Preload("Comments.User").
		Preload("Comments.Replies", "is_deleted = ?", false).
		Preload("Comments.Replies.User").
		First(&post, "url = ? AND is_active = ?", url, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) SlugExists(url, excludePostID string) (bool, error) {
	var count int64
	query := r.db.Model(&models.Post{}).Where("url = ?", url)
	if excludePostID != "" {
		query = query.Where("id <> ?", excludePostID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *PostRepositoryImpl) FindActive(tagSlug string, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.Model(&models.Post{}).Where("posts.is_active = ?", true)
	if tagSlug != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.url = ?", tagSlug)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Preload("Tags").
		Order("posts.published_on DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostRepositoryImpl) FindFiltered(filter PostFilter) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.Model(&models.Post{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}
	if filter.Status != "" {
		query = query.Where("is_active = ?", strings.EqualFold(filter.Status, "active"))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Tags").
		Order("published_on DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostRepositoryImpl) FindRecentActive(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("Tags").
		Where("is_active = ?", true).
		Order("published_on DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepositoryImpl) Create(post *models.Post, tagIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(tagIDs) > 0 {
			var tags []models.Tag
			if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
				return err
			}
			post.Tags = tags
		}
		return tx.Create(post).Error
	})
}

func (r *PostRepositoryImpl) Update(post *models.Post, tagIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}

		var tags []models.Tag
		if len(tagIDs) > 0 {
			if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
				return err
			}
		}
		return tx.Model(post).Association("Tags").Replace(tags)
	})
}

func (r *PostRepositoryImpl) SetActive(postID string, isActive bool) error {
	result := r.db.Model(&models.Post{}).Where("id = ?", postID).Update("is_active", isActive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) Delete(postID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		post := &models.Post{BaseModel: models.BaseModel{ID: postID}}
		if err := tx.Model(post).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&models.Comment{}, "post_id = ?", postID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Like{}, "post_id = ?", postID).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, "id = ?", postID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// --- Like operations ---

func (r *PostRepositoryImpl) Like(postID, userID string) error {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyLiked
	}
	return r.db.Create(&models.Like{PostID: postID, UserID: userID}).Error
}

func (r *PostRepositoryImpl) Unlike(postID, userID string) error {
	result := r.db.Delete(&models.Like{}, "post_id = ? AND user_id = ?", postID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) CountLikes(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostRepositoryImpl) HasLiked(postID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}
