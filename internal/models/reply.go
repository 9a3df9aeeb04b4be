package models

import "time"

type Reply struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"not null" json:"content"`
	AuthorID int    `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	PostID   int    `gorm:"not null;index" json:"post_id"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`

	// Nested replies hang off their parent; the FK cascade removes whole
	// subtrees when a parent reply or the post is deleted.
	ParentReplyID *int   `gorm:"index" json:"parent_reply_id,omitempty"`
	ParentReply   *Reply `gorm:"foreignKey:ParentReplyID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateReplyRequest struct {
	Content       string `json:"content" binding:"required"`
	ParentReplyID *int   `json:"parent_reply_id,omitempty"`
}
