package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	FollowerID  string    `gorm:"type:uuid;primaryKey" json:"follower_id"`
	FollowingID string    `gorm:"type:uuid;primaryKey" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
