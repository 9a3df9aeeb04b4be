package models

import "time"

type Post struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null" json:"content"`
	OwnerID int    `gorm:"not null;index" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner"`

	// Materialized projections of the vote ledger. Mutated only inside
	// votes.Ledger transactions, never written by handlers.
	AgreeCount    int `gorm:"not null;default:0" json:"agree_count"`
	DisagreeCount int `gorm:"not null;default:0" json:"disagree_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}
