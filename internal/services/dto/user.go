package dto

// ---------------- Requests ----------------

type EditProfileRequest struct {
	Name  string `json:"name" validate:"required,max=60"`
	Image string `json:"image" validate:"omitempty,max=255"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,is-user-role"`
}

// ---------------- Responses ----------------

// ProfileResponse is the public profile page: the user, their posts and
// comments, their counters and whether the viewer already follows them.
type ProfileResponse struct {
	User           UserDTO             `json:"user"`
	Posts          []PostSummary       `json:"posts"`
	Comments       []ProfileCommentDTO `json:"comments"`
	FollowerCount  int64               `json:"follower_count"`
	FollowingCount int64               `json:"following_count"`
	IsFollowing    bool                `json:"is_following"`
	IsOwnProfile   bool                `json:"is_own_profile"`
}

type ContactDTO struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Name     string `json:"name"`
	Image    string `json:"image"`
}
