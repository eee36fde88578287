package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/MohammadHarish521/Roastume/internal/models"
)

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked      bool
	LikesCount int
}

// LikeService toggles likes on resumes and hands qualifying transitions to the
// notification service.
type LikeService struct {
	db                 *gorm.DB
	countsDenormalized bool
	notifications      *NotificationService
}

func NewLikeService(db *gorm.DB, countsDenormalized bool, notifications *NotificationService) *LikeService {
	return &LikeService{db: db, countsDenormalized: countsDenormalized, notifications: notifications}
}

// Toggle flips userID's like on resumeID. A none→liked transition by someone
// other than the owner emits a notification; the notification is best-effort
// and never fails the toggle. Un-liking never touches notifications.
func (s *LikeService) Toggle(resumeID, userID int) (*LikeResult, error) {
	var resume models.Resume
	if err := s.db.First(&resume, resumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		result, retry, err := s.toggleOnce(resume, userID)
		if err != nil {
			return nil, err
		}
		if !retry {
			return result, nil
		}
	}
	// Repeated lost races on a single-row ledger; give up cleanly rather than
	// spin.
	return nil, gorm.ErrDuplicatedKey
}

func (s *LikeService) toggleOnce(resume models.Resume, userID int) (*LikeResult, bool, error) {
	result := &LikeResult{}
	var delta int
	notify := false

	var existing models.Like
	err := s.db.Where("resume_id = ? AND user_id = ?", resume.ID, userID).First(&existing).Error

	switch {
	case err == nil:
		// Already liked: toggle off.
		res := s.db.Delete(&existing)
		if res.Error != nil {
			return nil, false, res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent request removed the row first; rerun the cycle.
			return nil, true, nil
		}
		result.Liked = false
		delta = -1

	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.Like{ResumeID: resume.ID, UserID: userID}
		if err := s.db.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent identical request won the insert; this one
				// lands on the same outcome without a second ledger row or a
				// second notification.
				result.Liked = true
				count, err := s.deriveCount(resume.ID)
				if err != nil {
					return nil, false, err
				}
				result.LikesCount = count
				return result, false, nil
			}
			return nil, false, err
		}
		result.Liked = true
		delta = 1
		notify = resume.UserID != userID

	default:
		return nil, false, err
	}

	count, err := s.projectCount(resume.ID, delta)
	if err != nil {
		return nil, false, err
	}
	result.LikesCount = count

	if notify {
		if err := s.notifications.EmitLike(resume, userID); err != nil {
			log.Printf("like notification for resume %d failed: %v", resume.ID, err)
		}
	}

	return result, false, nil
}

func (s *LikeService) projectCount(resumeID, delta int) (int, error) {
	if s.countsDenormalized {
		err := s.db.Model(&models.Resume{}).Where("id = ?", resumeID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
		if err == nil {
			var resume models.Resume
			if err := s.db.Select("likes_count").First(&resume, resumeID).Error; err != nil {
				return 0, err
			}
			return resume.LikesCount, nil
		}
		log.Printf("likes counter update failed for resume %d, falling back to derived count: %v", resumeID, err)
	}
	return s.deriveCount(resumeID)
}

func (s *LikeService) deriveCount(resumeID int) (int, error) {
	var likes int64
	if err := s.db.Model(&models.Like{}).Where("resume_id = ?", resumeID).Count(&likes).Error; err != nil {
		return 0, err
	}
	return int(likes), nil
}

// Count returns the resume's current like count without applying a toggle.
func (s *LikeService) Count(resumeID int) (int, error) {
	if s.countsDenormalized {
		var resume models.Resume
		if err := s.db.Select("likes_count").First(&resume, resumeID).Error; err != nil {
			return 0, err
		}
		return resume.LikesCount, nil
	}
	return s.deriveCount(resumeID)
}
