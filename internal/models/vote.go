package models

import "time"

// Vote is a ledger fact: at most one row per (user, post) pair, enforced by
// the composite unique index. Post counters are derived from these rows.
type Vote struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	UserID   int    `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PostID   int    `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"post_id"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	VoteType string `gorm:"not null" json:"vote_type"` // "agree" or "disagree"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
