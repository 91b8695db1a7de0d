package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"blogapp_backend/internal/config"
	"blogapp_backend/internal/imageprocessor"
	"blogapp_backend/internal/storage"
	"blogapp_backend/pkg/apperrors"
)

// UploadKind picks the resize profile and storage prefix for a file.
type UploadKind string

const (
	UploadKindAvatar UploadKind = "avatar"
	UploadKindCover  UploadKind = "cover"
)

type UploadService interface {
	// UploadImage validates, resizes and stores an uploaded image,
	// returning its public URL.
	UploadImage(ctx context.Context, userID string, kind UploadKind, header *multipart.FileHeader) (string, error)
	DeleteFile(ctx context.Context, path string) error
}

type uploadService struct {
	store     storage.Storage
	processor *imageprocessor.Processor
	cfg       *config.Config
}

func NewUploadService(store storage.Storage, processor *imageprocessor.Processor, cfg *config.Config) UploadService {
	return &uploadService{store: store, processor: processor, cfg: cfg}
}

func (s *uploadService) UploadImage(ctx context.Context, userID string, kind UploadKind, header *multipart.FileHeader) (string, error) {
	if header.Size > s.cfg.Upload.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, s.cfg.Upload.MaxSize+1))
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if int64(len(raw)) > s.cfg.Upload.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	if !s.typeAllowed(header) {
		return "", apperrors.ErrInvalidFileType
	}
	if !imageprocessor.IsValidImage(bytes.NewReader(raw)) {
		return "", apperrors.ErrInvalidFileType
	}

	size := imageprocessor.SizeCover
	if kind == UploadKindAvatar {
		size = imageprocessor.SizeAvatar
	}

	processed, contentType, err := s.processor.Process(bytes.NewReader(raw), size)
	if err != nil {
		return "", apperrors.NewBadRequestError("Could not process image").WithError(err)
	}

	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	path := fmt.Sprintf("%s/%s/%s%s", kind, userID, uuid.New().String(), ext)

	if err := s.store.Save(ctx, path, processed, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

func (s *uploadService) DeleteFile(ctx context.Context, path string) error {
	if err := s.store.Delete(ctx, path); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *uploadService) typeAllowed(header *multipart.FileHeader) bool {
	contentType := header.Header.Get("Content-Type")
	for _, allowed := range s.cfg.Upload.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	// Some clients omit the part content type. Fall back to the extension.
	if contentType == "" {
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".jpg", ".jpeg", ".png":
			return true
		}
	}
	return false
}
