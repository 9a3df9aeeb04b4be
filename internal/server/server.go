package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/univoz/univoz-backend/internal/config"
	"github.com/univoz/univoz-backend/internal/database"
	"github.com/univoz/univoz-backend/internal/handlers"
	"github.com/univoz/univoz-backend/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// NewServer wires the database, handlers and router into an http.Server.
func NewServer(cfg *config.Config, db database.Service) *http.Server {
	handler := handlers.NewHandler(db.GetDB(), []byte(cfg.JWTSecret))

	newServer := &Server{
		cfg:     cfg,
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	secret := []byte(s.cfg.JWTSecret)

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads; optional auth fills in viewer-specific fields
		public := api.Group("")
		public.Use(middleware.OptionalAuth(secret))
		{
			public.GET("/posts", s.handler.Post.GetPosts)
			public.GET("/posts/:id", s.handler.Post.GetPost)
			public.GET("/posts/:id/replies", s.handler.Reply.GetReplies)

			public.GET("/users/search", s.handler.User.SearchUsers)
			public.GET("/users/:id", s.handler.User.GetUserProfile)
			public.GET("/users/:id/followers", s.handler.User.GetFollowers)
			public.GET("/users/:id/following", s.handler.User.GetFollowing)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(secret))
		{
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.PUT("/users/me", s.handler.User.UpdateProfile)

			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.PUT("/posts/:id", s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:id", s.handler.Post.DeletePost)
			protected.POST("/posts/:id/vote", s.handler.Post.VotePost)

			protected.POST("/posts/:id/replies", s.handler.Reply.CreateReply)
			protected.DELETE("/replies/:replyId", s.handler.Reply.DeleteReply)

			protected.POST("/users/:id/follow", s.handler.User.FollowUser)
			protected.DELETE("/users/:id/follow", s.handler.User.UnfollowUser)
		}
	}

	return r
}
