package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/MohammadHarish521/Roastume/internal/models"
)

// Notification listings are capped at one page.
const notificationPageSize = 50

// NotificationService appends and reads user notifications. Rows are
// append-only; the only mutation is the recipient flipping is_read.
type NotificationService struct {
	db  *gorm.DB
	sms *SMSSender // nil when Twilio is not configured
}

func NewNotificationService(db *gorm.DB, sms *SMSSender) *NotificationService {
	return &NotificationService{db: db, sms: sms}
}

// EmitLike records a "like" notification for the resume owner. Callers are
// expected to have filtered out self-likes already.
func (s *NotificationService) EmitLike(resume models.Resume, actorID int) error {
	var actor models.Profile
	if err := s.db.First(&actor, actorID).Error; err != nil {
		return err
	}

	message := fmt.Sprintf("%s liked your resume", actor.Username)
	if resume.Name != "" {
		message = fmt.Sprintf("%s liked your resume '%s'", actor.Username, resume.Name)
	}

	notification := models.Notification{
		UserID:   resume.UserID,
		ActorID:  actorID,
		Kind:     models.NotificationKindLike,
		ResumeID: resume.ID,
		Message:  message,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return err
	}

	if s.sms != nil {
		var owner models.Profile
		if err := s.db.First(&owner, resume.UserID).Error; err == nil && owner.Phone != "" {
			if err := s.sms.Send(owner.Phone, message); err != nil {
				log.Printf("sms delivery to user %d failed: %v", owner.ID, err)
			}
		}
	}

	return nil
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(userID int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(notificationPageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips is_read on one of the recipient's notifications. An id that
// belongs to someone else, or to nothing, is a silent no-op so callers cannot
// probe for other users' notification ids.
func (s *NotificationService) MarkRead(id, userID int) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

// MarkAllRead flips every currently-unread notification owned by the
// recipient.
func (s *NotificationService) MarkAllRead(userID int) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
