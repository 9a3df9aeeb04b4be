package models

import "time"

// Follow is a directed edge: follower follows following. The composite
// unique index makes concurrent duplicate follows collapse to one edge.
type Follow struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	FollowerID  int       `gorm:"not null;uniqueIndex:idx_follows_edge" json:"follower_id"`
	FollowingID int       `gorm:"not null;uniqueIndex:idx_follows_edge" json:"following_id"`
	Follower    User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}
