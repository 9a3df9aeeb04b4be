package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/univoz/univoz-backend/internal/apperr"
	"github.com/univoz/univoz-backend/internal/models"
	"github.com/univoz/univoz-backend/internal/votes"
)

type PostHandler struct {
	db     *gorm.DB
	ledger *votes.Ledger
}

func NewPostHandler(db *gorm.DB, ledger *votes.Ledger) *PostHandler {
	return &PostHandler{db: db, ledger: ledger}
}

func (h *PostHandler) postResponse(c *gin.Context, post *models.Post) gin.H {
	viewerVote := votes.StateNone
	if viewerID, ok := extractUserID(c); ok {
		if state, err := h.ledger.StateFor(viewerID, post.ID); err == nil {
			viewerVote = state
		}
	}

	return gin.H{
		"id":             post.ID,
		"content":        post.Content,
		"owner_id":       post.OwnerID,
		"owner":          post.Owner,
		"agree_count":    post.AgreeCount,
		"disagree_count": post.DisagreeCount,
		"viewer_vote":    viewerVote,
		"created_at":     post.CreatedAt,
		"updated_at":     post.UpdatedAt,
	}
}

// GetPosts returns all posts, newest first
func (h *PostHandler) GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := h.db.Preload("Owner").Order("created_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	responses := make([]gin.H, 0, len(posts))
	for i := range posts {
		responses = append(responses, h.postResponse(c, &posts[i]))
	}

	c.JSON(http.StatusOK, responses)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	var post models.Post

	if err := h.db.Preload("Owner").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, h.postResponse(c, &post))
}

// CreatePost creates a new post (PROTECTED)
func (h *PostHandler) CreatePost(c *gin.Context) {
	ownerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	post := models.Post{
		Content: input.Content,
		OwnerID: ownerID,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	h.db.Preload("Owner").First(&post, post.ID)

	c.JSON(http.StatusCreated, h.postResponse(c, &post))
}

// UpdatePost updates a post's content (PROTECTED - requires ownership)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	post.Content = input.Content
	if err := h.db.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	h.db.Preload("Owner").First(&post, post.ID)

	c.JSON(http.StatusOK, h.postResponse(c, &post))
}

// DeletePost deletes a post (PROTECTED - requires ownership). Replies and
// votes go with it via the FK cascades.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	if err := h.db.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// VotePost sets the caller's vote on a post to the requested state (PROTECTED)
func (h *PostHandler) VotePost(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var input struct {
		VoteType string `json:"vote_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vote_type is required"})
		return
	}

	state, err := votes.ParseState(input.VoteType)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	post, err := h.ledger.Cast(userID, postID, state)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.postResponse(c, post))
}
