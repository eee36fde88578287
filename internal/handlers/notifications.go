package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MohammadHarish521/Roastume/internal/models"
	"github.com/MohammadHarish521/Roastume/internal/services"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notifications, err := h.notifications.List(userID)
	if err != nil {
		log.Printf("listing notifications for user %d failed: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		// Unknown ids are a no-op, not an error
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := h.notifications.MarkRead(id, userID); err != nil {
		log.Printf("marking notification %d read for user %d failed: %v", id, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAllNotificationsRead marks all the caller's unread notifications as read
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.notifications.MarkAllRead(userID); err != nil {
		log.Printf("marking notifications read for user %d failed: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
