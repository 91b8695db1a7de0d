package repositories

import (
	"errors"

	"blogapp_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrPostAlreadyInList   = errors.New("post already in collection")
	ErrPostNotInCollection = errors.New("post not in collection")
)

const (
	CollectionSortNewest  = "newest"
	CollectionSortPopular = "popular"
	CollectionSortUpdated = "updated"
)

type CollectionRepository interface {
	FindByID(id string) (*models.Collection, error)
	FindWithPosts(id string) (*models.Collection, error)
	FindByCreator(creatorID string) ([]models.Collection, error)
	FindOpen(sort string, limit, offset int) ([]models.Collection, int64, error)
	Create(collection *models.Collection) error
	Update(collection *models.Collection) error
	Delete(collectionID string) error

	AddPost(collectionID, postID string) error
	RemovePost(collectionID, postID string) error
	ContainsPost(collectionID, postID string) (bool, error)
}

type CollectionRepositoryImpl struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &CollectionRepositoryImpl{db: db}
}

func (r *CollectionRepositoryImpl) FindByID(id string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.Preload("Creator").First(&collection, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepositoryImpl) FindWithPosts(id string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.
		Preload("Creator").
		Preload("Posts", "is_active = ?", true).
		Preload("Posts.User").
		Preload("Posts.Tags").
		First(&collection, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepositoryImpl) FindByCreator(creatorID string) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.
		Preload("Posts", "is_active = ?", true).
		Where("creator_id = ?", creatorID).
		Order("updated_at DESC").
		Find(&collections).Error
	return collections, err
}

func (r *CollectionRepositoryImpl) FindOpen(sort string, limit, offset int) ([]models.Collection, int64, error) {
	var collections []models.Collection
	var total int64

	query := r.db.Model(&models.Collection{}).Where("is_open = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.db.
		Preload("Creator").
		Preload("Posts", "is_active = ?", true).
		Where("collections.is_open = ?", true)

	switch sort {
	case CollectionSortPopular:
		listQuery = listQuery.
			Joins("LEFT JOIN collection_posts ON collection_posts.collection_id = collections.id").
			Group("collections.id").
			Order("COUNT(collection_posts.post_id) DESC")
	case CollectionSortUpdated:
		listQuery = listQuery.Order("collections.updated_at DESC")
	default:
		listQuery = listQuery.Order("collections.created_at DESC")
	}

	err := listQuery.Limit(limit).Offset(offset).Find(&collections).Error
	return collections, total, err
}

func (r *CollectionRepositoryImpl) Create(collection *models.Collection) error {
	return r.db.Create(collection).Error
}

func (r *CollectionRepositoryImpl) Update(collection *models.Collection) error {
	return r.db.Save(collection).Error
}

func (r *CollectionRepositoryImpl) Delete(collectionID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		collection := &models.Collection{BaseModel: models.BaseModel{ID: collectionID}}
		if err := tx.Model(collection).Association("Posts").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&models.Collection{}, "id = ?", collectionID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCollectionNotFound
		}
		return nil
	})
}

func (r *CollectionRepositoryImpl) AddPost(collectionID, postID string) error {
	contains, err := r.ContainsPost(collectionID, postID)
	if err != nil {
		return err
	}
	if contains {
		return ErrPostAlreadyInList
	}

	collection := &models.Collection{BaseModel: models.BaseModel{ID: collectionID}}
	post := &models.Post{BaseModel: models.BaseModel{ID: postID}}
	return r.db.Model(collection).Association("Posts").Append(post)
}

func (r *CollectionRepositoryImpl) RemovePost(collectionID, postID string) error {
	contains, err := r.ContainsPost(collectionID, postID)
	if err != nil {
		return err
	}
	if !contains {
		return ErrPostNotInCollection
	}

	collection := &models.Collection{BaseModel: models.BaseModel{ID: collectionID}}
	post := &models.Post{BaseModel: models.BaseModel{ID: postID}}
	return r.db.Model(collection).Association("Posts").Delete(post)
}

func (r *CollectionRepositoryImpl) ContainsPost(collectionID, postID string) (bool, error) {
	var count int64
	err := r.db.Table("collection_posts").
		Where("collection_id = ? AND post_id = ?", collectionID, postID).
		Count(&count).Error
	return count > 0, err
}
