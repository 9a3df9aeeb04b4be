package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/univoz/univoz-backend/internal/follows"
	"github.com/univoz/univoz-backend/internal/votes"
)

// Handler combines all handler types
type Handler struct {
	Auth  *AuthHandler
	User  *UserHandler
	Post  *PostHandler
	Reply *ReplyHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, jwtSecret []byte) *Handler {
	ledger := votes.NewLedger(db)
	graph := follows.NewGraph(db)

	return &Handler{
		Auth:  NewAuthHandler(db, jwtSecret),
		User:  NewUserHandler(db, graph),
		Post:  NewPostHandler(db, ledger),
		Reply: NewReplyHandler(db),
	}
}

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
