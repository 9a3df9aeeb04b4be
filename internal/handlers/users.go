package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/univoz/univoz-backend/internal/apperr"
	"github.com/univoz/univoz-backend/internal/follows"
	"github.com/univoz/univoz-backend/internal/models"
)

type UserHandler struct {
	db    *gorm.DB
	graph *follows.Graph
}

func NewUserHandler(db *gorm.DB, graph *follows.Graph) *UserHandler {
	return &UserHandler{db: db, graph: graph}
}

// GetUserProfile returns a user's profile with posts and follow counts
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var posts []models.Post
	h.db.Where("owner_id = ?", userID).Preload("Owner").Order("created_at desc").Find(&posts)

	followerCount, err := h.graph.FollowerCount(userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Failed to load profile"})
		return
	}
	followingCount, err := h.graph.FollowingCount(userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Failed to load profile"})
		return
	}

	isFollowing := false
	if viewerID, ok := extractUserID(c); ok {
		isFollowing, _ = h.graph.IsFollowing(viewerID, userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"posts":           posts,
		"follower_count":  followerCount,
		"following_count": followingCount,
		"is_following":    isFollowing,
	})
}

// UpdateProfile applies a partial profile update to the authenticated user
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if patch.Username != nil && *patch.Username != user.Username {
		var taken models.User
		err := h.db.Where("username = ? AND id <> ?", *patch.Username, userID).First(&taken).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already in use"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	patch.Apply(&user)

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// SearchUsers finds users by username or name substring
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, []models.User{})
		return
	}

	var users []models.User
	pattern := "%" + query + "%"
	if err := h.db.Where("username ILIKE ? OR name ILIKE ?", pattern, pattern).
		Order("username asc").Limit(20).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// FollowUser follows a user
func (h *UserHandler) FollowUser(c *gin.Context) {
	followerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	followingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if err := h.graph.Follow(followerID, followingID); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// UnfollowUser unfollows a user
func (h *UserHandler) UnfollowUser(c *gin.Context) {
	followerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	followingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if err := h.graph.Unfollow(followerID, followingID); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetFollowers returns a user's followers
func (h *UserHandler) GetFollowers(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	users, err := h.graph.Followers(userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Failed to list followers"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetFollowing returns users that a user is following
func (h *UserHandler) GetFollowing(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	users, err := h.graph.Following(userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Failed to list following"})
		return
	}

	c.JSON(http.StatusOK, users)
}
