package services

import (
	"errors"

	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

const collectionsPageSize = 10

type CollectionService interface {
	Create(creatorID string, req *dto.CreateCollectionRequest) (*dto.CollectionDTO, error)
	Edit(collectionID, userID string, req *dto.EditCollectionRequest) (*dto.CollectionDTO, error)
	Delete(collectionID, userID string, isAdmin bool) error

	Get(collectionID, viewerID string) (*dto.CollectionDetail, error)
	ListOpen(query dto.ListCollectionsQuery) (*dto.CollectionListResponse, error)
	ListMine(userID string) ([]dto.CollectionDTO, error)

	// AddPost puts an active post into a collection. Closed collections
	// only accept posts from their creator.
	AddPost(collectionID, userID, postID string) error
	RemovePost(collectionID, userID, postID string) error
}

type collectionService struct {
	collectionRepo repositories.CollectionRepository
	postRepo       repositories.PostRepository
}

func NewCollectionService(
	collectionRepo repositories.CollectionRepository,
	postRepo repositories.PostRepository,
) CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		postRepo:       postRepo,
	}
}

func (s *collectionService) Create(creatorID string, req *dto.CreateCollectionRequest) (*dto.CollectionDTO, error) {
	collection := &models.Collection{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   creatorID,
		IsOpen:      true,
	}
	if req.IsOpen != nil {
		collection.IsOpen = *req.IsOpen
	}

	if err := s.collectionRepo.Create(collection); err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := dto.CollectionToDTO(collection)
	return &out, nil
}

func (s *collectionService) Edit(collectionID, userID string, req *dto.EditCollectionRequest) (*dto.CollectionDTO, error) {
	collection, err := s.find(collectionID)
	if err != nil {
		return nil, err
	}
	if collection.CreatorID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	collection.Title = req.Title
	collection.Description = req.Description
	if req.IsOpen != nil {
		collection.IsOpen = *req.IsOpen
	}

	if err := s.collectionRepo.Update(collection); err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := dto.CollectionToDTO(collection)
	return &out, nil
}

func (s *collectionService) Delete(collectionID, userID string, isAdmin bool) error {
	collection, err := s.find(collectionID)
	if err != nil {
		return err
	}
	if collection.CreatorID != userID && !isAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.collectionRepo.Delete(collectionID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *collectionService) Get(collectionID, viewerID string) (*dto.CollectionDetail, error) {
	collection, err := s.collectionRepo.FindWithPosts(collectionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCollectionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Closed collections are visible to their creator only.
	if !collection.IsOpen && collection.CreatorID != viewerID {
		return nil, apperrors.ErrNotFound(repositories.ErrCollectionNotFound)
	}

	return &dto.CollectionDetail{
		CollectionDTO: dto.CollectionToDTO(collection),
		Posts:         dto.PostsToSummaries(collection.Posts),
	}, nil
}

func (s *collectionService) ListOpen(query dto.ListCollectionsQuery) (*dto.CollectionListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	collections, total, err := s.collectionRepo.FindOpen(query.Sort, collectionsPageSize, (page-1)*collectionsPageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CollectionDTO, 0, len(collections))
	for i := range collections {
		out = append(out, dto.CollectionToDTO(&collections[i]))
	}

	return &dto.CollectionListResponse{
		Collections: out,
		Pagination:  dto.NewPagination(page, collectionsPageSize, total),
	}, nil
}

func (s *collectionService) ListMine(userID string) ([]dto.CollectionDTO, error) {
	collections, err := s.collectionRepo.FindByCreator(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CollectionDTO, 0, len(collections))
	for i := range collections {
		out = append(out, dto.CollectionToDTO(&collections[i]))
	}
	return out, nil
}

func (s *collectionService) AddPost(collectionID, userID, postID string) error {
	collection, err := s.find(collectionID)
	if err != nil {
		return err
	}
	if !collection.IsOpen && collection.CreatorID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if !post.IsActive {
		return apperrors.ErrInvalidOperation("collection", "Only published posts can be collected")
	}

	if err := s.collectionRepo.AddPost(collectionID, postID); err != nil {
		if errors.Is(err, repositories.ErrPostAlreadyInList) {
			return apperrors.ErrConflict(err, "collection", "Post already in collection")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *collectionService) RemovePost(collectionID, userID, postID string) error {
	collection, err := s.find(collectionID)
	if err != nil {
		return err
	}
	if !collection.IsOpen && collection.CreatorID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.collectionRepo.RemovePost(collectionID, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotInCollection) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *collectionService) find(collectionID string) (*models.Collection, error) {
	collection, err := s.collectionRepo.FindByID(collectionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCollectionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return collection, nil
}
