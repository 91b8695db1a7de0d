package services

import (
	"errors"

	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

type FollowService interface {
	// Follow creates the edge and notifies the target, addressed by
	// username. Following yourself or someone you already follow is
	// rejected.
	Follow(followerID, username string) (*dto.FollowResponse, error)

	// Unfollow removes the edge. No notification is sent for unfollows.
	Unfollow(followerID, username string) (*dto.FollowResponse, error)

	GetFollowers(username string) (*dto.FollowListResponse, error)
	GetFollowing(username string) (*dto.FollowListResponse, error)

	// GetContacts returns the user's mutual follows.
	GetContacts(userID string) ([]dto.ContactDTO, error)
}

type followService struct {
	followRepo      repositories.FollowRepository
	userRepo        repositories.UserRepository
	notificationSvc NotificationService
}

func NewFollowService(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notificationSvc NotificationService,
) FollowService {
	return &followService{
		followRepo:      followRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *followService) Follow(followerID, username string) (*dto.FollowResponse, error) {
	follower, err := s.userRepo.FindByID(followerID)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	following, err := s.userRepo.FindByUserName(username)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	followingID := following.ID
	if followerID == followingID {
		return nil, apperrors.ErrSelfAction
	}

	if err := s.followRepo.Create(followerID, followingID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFollowing) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	message, linkUrl := FollowerNotification(follower.Name, follower.UserName)
	s.notificationSvc.Notify(followingID, NotificationTypeNewFollower, message, linkUrl,
		map[string]interface{}{"follower_id": followerID})

	count, err := s.followRepo.CountFollowers(followingID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.FollowResponse{Following: true, FollowerCount: count}, nil
}

func (s *followService) Unfollow(followerID, username string) (*dto.FollowResponse, error) {
	following, err := s.userRepo.FindByUserName(username)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	followingID := following.ID
	if followerID == followingID {
		return nil, apperrors.ErrSelfAction
	}

	if err := s.followRepo.Delete(followerID, followingID); err != nil {
		if errors.Is(err, repositories.ErrFollowNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	count, err := s.followRepo.CountFollowers(followingID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.FollowResponse{Following: false, FollowerCount: count}, nil
}

func (s *followService) GetFollowers(username string) (*dto.FollowListResponse, error) {
	user, err := s.userRepo.FindByUserName(username)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	users, err := s.followRepo.FindFollowers(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.FollowListResponse{Users: make([]dto.ContactDTO, 0, len(users))}
	for i := range users {
		out.Users = append(out.Users, dto.UserToContact(&users[i]))
	}
	out.Total = len(out.Users)
	return out, nil
}

func (s *followService) GetFollowing(username string) (*dto.FollowListResponse, error) {
	user, err := s.userRepo.FindByUserName(username)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	users, err := s.followRepo.FindFollowing(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.FollowListResponse{Users: make([]dto.ContactDTO, 0, len(users))}
	for i := range users {
		out.Users = append(out.Users, dto.UserToContact(&users[i]))
	}
	out.Total = len(out.Users)
	return out, nil
}

func (s *followService) GetContacts(userID string) ([]dto.ContactDTO, error) {
	mutualIDs, err := s.followRepo.MutualIDs(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	contacts := make([]dto.ContactDTO, 0, len(mutualIDs))
	for _, id := range mutualIDs {
		user, err := s.userRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				continue
			}
			return nil, apperrors.InternalError(err)
		}
		contacts = append(contacts, dto.UserToContact(user))
	}
	return contacts, nil
}

func (s *followService) mapUserErr(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
