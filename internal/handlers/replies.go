package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/univoz/univoz-backend/internal/models"
)

type ReplyHandler struct {
	db *gorm.DB
}

func NewReplyHandler(db *gorm.DB) *ReplyHandler {
	return &ReplyHandler{db: db}
}

// GetReplies returns all replies for a post, oldest first; the client
// assembles the tree from parent_reply_id.
func (h *ReplyHandler) GetReplies(c *gin.Context) {
	postID := c.Param("id")
	var replies []models.Reply

	if err := h.db.Where("post_id = ?", postID).Preload("Author").Order("created_at asc").Find(&replies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch replies"})
		return
	}

	if replies == nil {
		replies = []models.Reply{}
	}
	c.JSON(http.StatusOK, replies)
}

// CreateReply creates a reply on a post, optionally nested under another
// reply. The parent reply only has to exist; it is not checked against the
// target post.
func (h *ReplyHandler) CreateReply(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateReplyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := h.db.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if input.ParentReplyID != nil {
		var parent models.Reply
		if err := h.db.First(&parent, *input.ParentReplyID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent reply not found"})
			return
		}
	}

	reply := models.Reply{
		Content:       input.Content,
		AuthorID:      authorID,
		PostID:        post.ID,
		ParentReplyID: input.ParentReplyID,
	}

	if err := h.db.Create(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}

	h.db.Preload("Author").First(&reply, reply.ID)
	c.JSON(http.StatusCreated, reply)
}

// DeleteReply deletes a reply (owner only); nested replies cascade with it.
func (h *ReplyHandler) DeleteReply(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var reply models.Reply
	if err := h.db.First(&reply, c.Param("replyId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
		return
	}

	if reply.AuthorID != authorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own replies"})
		return
	}

	if err := h.db.Delete(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}
