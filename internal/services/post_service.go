package services

import (
	"errors"
	"time"

	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

// Page sizes of the public and authenticated listings.
const (
	publicPostsPageSize = 4
	myPostsPageSize     = 6
)

type PostService interface {
	// ListActive is the public feed, optionally narrowed to a tag slug.
	ListActive(query dto.ListPostsQuery) (*dto.PostListResponse, error)
	// ListMine lists the caller's own posts, any status. Admins see
	// every post on the platform.
	ListMine(userID string, isAdmin bool, query dto.MyPostsQuery) (*dto.PostListResponse, error)

	// GetBySlug loads the public detail view for an active post.
	GetBySlug(slug, viewerID string) (*dto.PostDetail, error)
	// GetForEdit loads a post for its owner or an admin, regardless of
	// its status.
	GetForEdit(postID, userID string, isAdmin bool) (*dto.PostDetail, error)

	Create(userID string, isAdmin bool, req *dto.CreatePostRequest) (*dto.PostSummary, error)
	Edit(postID, userID string, isAdmin bool, req *dto.EditPostRequest) (*dto.PostSummary, error)
	Delete(postID, userID string, isAdmin bool) error

	// Approve activates a pending post and notifies its author, unless
	// the approving admin is the author. Admin only, enforced by the
	// route.
	Approve(postID, adminID string) error

	Like(postID, userID string) (*dto.LikeResponse, error)
	Unlike(postID, userID string) (*dto.LikeResponse, error)
}

type postService struct {
	postRepo        repositories.PostRepository
	userRepo        repositories.UserRepository
	commentRepo     repositories.CommentRepository
	notificationSvc NotificationService
}

func NewPostService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	notificationSvc NotificationService,
) PostService {
	return &postService{
		postRepo:        postRepo,
		userRepo:        userRepo,
		commentRepo:     commentRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *postService) ListActive(query dto.ListPostsQuery) (*dto.PostListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	posts, total, err := s.postRepo.FindActive(query.Tag, publicPostsPageSize, (page-1)*publicPostsPageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PostListResponse{
		Posts:      dto.PostsToSummaries(posts),
		Pagination: dto.NewPagination(page, publicPostsPageSize, total),
	}, nil
}

func (s *postService) ListMine(userID string, isAdmin bool, query dto.MyPostsQuery) (*dto.PostListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	filter := repositories.PostFilter{
		UserID:   userID,
		Search:   query.Search,
		Status:   query.Status,
		Page:     page,
		PageSize: myPostsPageSize,
	}
	if isAdmin {
		filter.UserID = ""
	}

	posts, total, err := s.postRepo.FindFiltered(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PostListResponse{
		Posts:      dto.PostsToSummaries(posts),
		Pagination: dto.NewPagination(page, myPostsPageSize, total),
	}, nil
}

func (s *postService) GetBySlug(slug, viewerID string) (*dto.PostDetail, error) {
	post, err := s.postRepo.FindActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildDetail(post, viewerID)
}

func (s *postService) GetForEdit(postID, userID string, isAdmin bool) (*dto.PostDetail, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if post.UserID != userID && !isAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.buildDetail(post, userID)
}

func (s *postService) buildDetail(post *models.Post, viewerID string) (*dto.PostDetail, error) {
	likeCount, err := s.postRepo.CountLikes(post.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	commentCount, err := s.commentRepo.CountByPost(post.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	detail := &dto.PostDetail{
		PostSummary:  dto.PostToSummary(post),
		Content:      post.Content,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		Comments:     dto.CommentsToDTOs(post.Comments),
	}
	if viewerID != "" {
		liked, err := s.postRepo.HasLiked(post.ID, viewerID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		detail.LikedByUser = liked
	}
	return detail, nil
}

func (s *postService) Create(userID string, isAdmin bool, req *dto.CreatePostRequest) (*dto.PostSummary, error) {
	taken, err := s.postRepo.SlugExists(req.Url, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ErrAlreadyExists(repositories.ErrSlugTaken)
	}

	post := &models.Post{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Url:         req.Url,
		PublishedOn: time.Now().UTC(),
		UserID:      userID,
	}
	if req.Image != "" {
		post.Image = req.Image
	}
	// Only admins publish directly. Everyone else waits for approval.
	if isAdmin {
		post.IsActive = req.IsActive
	}

	if err := s.postRepo.Create(post, req.TagIDs); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyAdminsOfNewPost(post, userID)

	out := dto.PostToSummary(post)
	return &out, nil
}

// notifyAdminsOfNewPost fans a submission notice out to every admin except
// the author. Best effort, like all notification writes.
func (s *postService) notifyAdminsOfNewPost(post *models.Post, authorID string) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return
	}
	admins, err := s.userRepo.FindAdmins()
	if err != nil {
		return
	}

	recipients := make([]string, 0, len(admins))
	for i := range admins {
		if admins[i].ID == authorID {
			continue
		}
		recipients = append(recipients, admins[i].ID)
	}
	if len(recipients) == 0 {
		return
	}

	message, linkUrl := PostSubmittedNotification(author.Name, post.Title, post.Url)
	s.notificationSvc.NotifyMany(recipients, NotificationTypePostSubmitted, message, linkUrl,
		map[string]interface{}{"post_id": post.ID, "author_id": authorID})
}

func (s *postService) Edit(postID, userID string, isAdmin bool, req *dto.EditPostRequest) (*dto.PostSummary, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if post.UserID != userID && !isAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Url != post.Url {
		taken, err := s.postRepo.SlugExists(req.Url, post.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrAlreadyExists(repositories.ErrSlugTaken)
		}
	}

	wasActive := post.IsActive

	post.Title = req.Title
	post.Description = req.Description
	post.Content = req.Content
	post.Url = req.Url
	if req.Image != "" {
		post.Image = req.Image
	}
	if isAdmin {
		post.IsActive = req.IsActive
	} else {
		// An edit sends the post back for approval.
		post.IsActive = false
	}

	if err := s.postRepo.Update(post, req.TagIDs); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if isAdmin && !wasActive && post.IsActive && post.UserID != userID {
		message, linkUrl := PostApprovedNotification(post.Title, post.Url)
		s.notificationSvc.Notify(post.UserID, NotificationTypePostApproved, message, linkUrl, nil)
	}

	out := dto.PostToSummary(post)
	return &out, nil
}

func (s *postService) Delete(postID, userID string, isAdmin bool) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if post.UserID != userID && !isAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *postService) Approve(postID, adminID string) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if post.IsActive {
		return apperrors.ErrInvalidOperation("post", "Post is already published")
	}

	if err := s.postRepo.SetActive(postID, true); err != nil {
		return apperrors.InternalError(err)
	}

	if post.UserID != adminID {
		message, linkUrl := PostApprovedNotification(post.Title, post.Url)
		s.notificationSvc.Notify(post.UserID, NotificationTypePostApproved, message, linkUrl, nil)
	}
	return nil
}

func (s *postService) Like(postID, userID string) (*dto.LikeResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.postRepo.Like(postID, userID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyLiked) {
			return nil, apperrors.ErrConflict(err, "post", "Post already liked")
		}
		return nil, apperrors.InternalError(err)
	}

	// Liking your own post is allowed but never notifies.
	if post.UserID != userID {
		if liker, err := s.userRepo.FindByID(userID); err == nil {
			message, linkUrl := LikeNotification(liker.Name, post.Title, post.Url)
			s.notificationSvc.Notify(post.UserID, NotificationTypeNewLike, message, linkUrl,
				map[string]interface{}{"post_id": post.ID, "liker_id": userID})
		}
	}

	count, err := s.postRepo.CountLikes(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LikeResponse{Liked: true, LikeCount: count}, nil
}

func (s *postService) Unlike(postID, userID string) (*dto.LikeResponse, error) {
	if err := s.postRepo.Unlike(postID, userID); err != nil {
		if errors.Is(err, repositories.ErrLikeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	count, err := s.postRepo.CountLikes(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LikeResponse{Liked: false, LikeCount: count}, nil
}
