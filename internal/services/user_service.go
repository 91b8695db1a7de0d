package services

import (
	"errors"

	"blogapp_backend/internal/auth"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

type UserService interface {
	// GetProfile builds the public profile page for a username. viewerID
	// may be empty for anonymous visitors.
	GetProfile(username, viewerID string) (*dto.ProfileResponse, error)
	EditProfile(userID string, req *dto.EditProfileRequest) (*dto.UserDTO, error)
	ChangePassword(userID string, req *dto.ChangePasswordRequest) error

	// Admin operations
	ListUsers(page, pageSize int) ([]dto.UserDTO, dto.Pagination, error)
	UpdateRole(adminID, targetID string, role models.UserRole) error
}

type userService struct {
	userRepo    repositories.UserRepository
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	followRepo  repositories.FollowRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	followRepo repositories.FollowRepository,
) UserService {
	return &userService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
	}
}

func (s *userService) GetProfile(username, viewerID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByUserName(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	posts, _, err := s.postRepo.FindFiltered(repositories.PostFilter{
		UserID:   user.ID,
		Status:   "active",
		Page:     1,
		PageSize: 50,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	comments, err := s.commentRepo.FindRecentByUser(user.ID, 50)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	followers, err := s.followRepo.CountFollowers(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	following, err := s.followRepo.CountFollowing(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.ProfileResponse{
		User:           dto.UserToDTO(user),
		Posts:          dto.PostsToSummaries(posts),
		Comments:       dto.CommentsToProfileDTOs(comments),
		FollowerCount:  followers,
		FollowingCount: following,
		IsOwnProfile:   viewerID == user.ID,
	}
	if viewerID != "" && viewerID != user.ID {
		isFollowing, err := s.followRepo.Exists(viewerID, user.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		out.IsFollowing = isFollowing
	}
	return out, nil
}

func (s *userService) EditProfile(userID string, req *dto.EditProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	user.Name = req.Name
	if req.Image != "" {
		user.Image = req.Image
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := dto.UserToDTO(user)
	return &out, nil
}

func (s *userService) ChangePassword(userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("Current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) ListUsers(page, pageSize int) ([]dto.UserDTO, dto.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.userRepo.FindAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}

	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.UserToDTO(&users[i]))
	}
	return out, dto.NewPagination(page, pageSize, total), nil
}

func (s *userService) UpdateRole(adminID, targetID string, role models.UserRole) error {
	if adminID == targetID {
		return apperrors.ErrSelfAction
	}
	if err := s.userRepo.UpdateRole(targetID, role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
