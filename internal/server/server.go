package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/MohammadHarish521/Roastume/internal/config"
	"github.com/MohammadHarish521/Roastume/internal/database"
	"github.com/MohammadHarish521/Roastume/internal/handlers"
	"github.com/MohammadHarish521/Roastume/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// New wires the handlers against the given database handle.
func New(cfg *config.Config, db database.Service) *Server {
	return &Server{
		cfg:     cfg,
		db:      db,
		handler: handlers.NewHandler(db, cfg),
	}
}

// HTTPServer returns a configured http.Server ready to listen.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)
		api.POST("/auth/google", s.handler.Auth.GoogleLogin)

		// Resume routes (public reads)
		api.GET("/resumes", s.handler.Resume.GetResumes)
		api.GET("/resumes/:id", s.handler.Resume.GetResume)

		// Comment routes (public reads)
		api.GET("/comments/:id", s.handler.Comment.GetComment)

		// Profile routes (public reads)
		api.GET("/profiles/:id", s.handler.Profile.GetProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.cfg.JWTSecret))
		{
			// Auth protected routes
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.PUT("/profile", s.handler.Profile.UpdateProfile)

			// Resume protected routes
			protected.POST("/resumes", s.handler.Resume.CreateResume)
			// Gin cannot mix the static "my" segment with the :id param, so
			// the caller's own resumes live under /my/resumes.
			protected.GET("/my/resumes", s.handler.Resume.GetMyResumes)
			protected.PUT("/resumes/:id", s.handler.Resume.UpdateResume)
			protected.DELETE("/resumes/:id", s.handler.Resume.DeleteResume)
			protected.POST("/resumes/:id/like", s.handler.Resume.LikeResume)

			// Comment protected routes
			protected.POST("/resumes/:id/comments", s.handler.Comment.CreateComment)
			protected.PUT("/comments/:id", s.handler.Comment.UpdateComment)
			protected.DELETE("/comments/:id", s.handler.Comment.DeleteComment)
			protected.POST("/comments/:id/vote", s.handler.Comment.VoteComment)

			// Notification routes
			protected.GET("/notifications", s.handler.Notification.ListNotifications)
			protected.PUT("/notifications/:id", s.handler.Notification.MarkNotificationRead)
			protected.POST("/notifications/mark-all-read", s.handler.Notification.MarkAllNotificationsRead)
		}
	}

	return r
}
