package dto

// ---------------- Responses ----------------

type FollowResponse struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"follower_count"`
}

type FollowListResponse struct {
	Users []ContactDTO `json:"users"`
	Total int          `json:"total"`
}
