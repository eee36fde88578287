package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MohammadHarish521/Roastume/internal/config"
	"github.com/MohammadHarish521/Roastume/internal/database"
	"github.com/MohammadHarish521/Roastume/internal/services"
)

// Handler combines all handler types
type Handler struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Resume       *ResumeHandler
	Comment      *CommentHandler
	Notification *NotificationHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db database.Service, cfg *config.Config) *Handler {
	gormDB := db.GetDB()

	var sms *services.SMSSender
	if cfg.SMSEnabled() {
		sms = services.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}

	notifications := services.NewNotificationService(gormDB, sms)
	likes := services.NewLikeService(gormDB, cfg.CountsDenormalized, notifications)
	votes := services.NewVoteService(gormDB, cfg.CountsDenormalized)

	return &Handler{
		Auth:         NewAuthHandler(gormDB, cfg.JWTSecret),
		Profile:      NewProfileHandler(gormDB, cfg.CountsDenormalized, likes),
		Resume:       NewResumeHandler(gormDB, cfg.CountsDenormalized, likes, votes),
		Comment:      NewCommentHandler(gormDB, cfg.CountsDenormalized, votes),
		Notification: NewNotificationHandler(notifications),
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
