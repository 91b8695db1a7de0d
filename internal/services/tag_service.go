package services

import (
	"errors"
	"regexp"
	"strings"

	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

const tagsPageSize = 9

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the text and collapses every non-alphanumeric run
// into a single hyphen, trimming leading and trailing ones.
func Slugify(text string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

type TagService interface {
	// Create makes a tag from free text, deriving its slug. Duplicate
	// slugs are rejected.
	Create(creatorID string, req *dto.CreateTagRequest) (*dto.TagDTO, error)
	Delete(tagID string) error
	List(query dto.ListTagsQuery) (*dto.TagListResponse, error)
	ListAll() ([]dto.TagDTO, error)
	GetBySlug(slug string) (*dto.TagDTO, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) Create(creatorID string, req *dto.CreateTagRequest) (*dto.TagDTO, error) {
	text := strings.TrimSpace(req.Text)
	slug := Slugify(text)
	if slug == "" {
		return nil, apperrors.ValidationError(map[string]string{"text": "Tag text must contain letters or digits"})
	}

	tag := &models.Tag{Text: text, Url: slug, CreatorID: creatorID}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, repositories.ErrTagAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	out := dto.TagToDTO(tag)
	return &out, nil
}

func (s *tagService) Delete(tagID string) error {
	if err := s.tagRepo.Delete(tagID); err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *tagService) List(query dto.ListTagsQuery) (*dto.TagListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	rows, total, err := s.tagRepo.FindPaginatedWithCounts(query.Sort, tagsPageSize, (page-1)*tagsPageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tags := make([]dto.TagWithCountDTO, 0, len(rows))
	for i := range rows {
		tags = append(tags, dto.TagWithCountDTO{
			TagDTO:    dto.TagToDTO(&rows[i].Tag),
			PostCount: rows[i].PostCount,
		})
	}

	return &dto.TagListResponse{
		Tags:       tags,
		Pagination: dto.NewPagination(page, tagsPageSize, total),
	}, nil
}

func (s *tagService) ListAll() ([]dto.TagDTO, error) {
	tags, err := s.tagRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.TagsToDTOs(tags), nil
}

func (s *tagService) GetBySlug(slug string) (*dto.TagDTO, error) {
	tag, err := s.tagRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	out := dto.TagToDTO(tag)
	return &out, nil
}
