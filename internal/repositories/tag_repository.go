package repositories

import (
	"errors"

	"blogapp_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
)

// TagWithCount pairs a tag with the number of active posts carrying it.
type TagWithCount struct {
	models.Tag
	PostCount int64
}

type TagRepository interface {
	FindByID(id string) (*models.Tag, error)
	FindBySlug(url string) (*models.Tag, error)
	FindByIDs(ids []string) ([]models.Tag, error)
	FindAll() ([]models.Tag, error)
	// FindPaginatedWithCounts lists tags with their active post counts.
	// sort is "newest" or "popular" (the default: most used first).
	FindPaginatedWithCounts(sort string, limit, offset int) ([]TagWithCount, int64, error)
	Create(tag *models.Tag) error
	Delete(tagID string) error
}

type TagRepositoryImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &TagRepositoryImpl{db: db}
}

func (r *TagRepositoryImpl) FindByID(id string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) FindBySlug(url string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "url = ?", url).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) FindByIDs(ids []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *TagRepositoryImpl) FindAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("text ASC").Find(&tags).Error
	return tags, err
}

func (r *TagRepositoryImpl) FindPaginatedWithCounts(sort string, limit, offset int) ([]TagWithCount, int64, error) {
	var total int64
	if err := r.db.Model(&models.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "post_count DESC, tags.text ASC"
	if sort == "newest" {
		order = "tags.created_at DESC"
	}

	var rows []TagWithCount
	err := r.db.Model(&models.Tag{}).
		Select("tags.*, COUNT(CASE WHEN posts.is_active THEN posts.id END) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("LEFT JOIN posts ON posts.id = post_tags.post_id").
		Group("tags.id").
		Order(order).
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (r *TagRepositoryImpl) Create(tag *models.Tag) error {
	var count int64
	err := r.db.Model(&models.Tag{}).Where("url = ?", tag.Url).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTagAlreadyExists
	}
	return r.db.Create(tag).Error
}

func (r *TagRepositoryImpl) Delete(tagID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tag := &models.Tag{BaseModel: models.BaseModel{ID: tagID}}
		if err := tx.Model(tag).Association("Posts").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&models.Tag{}, "id = ?", tagID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTagNotFound
		}
		return nil
	})
}
