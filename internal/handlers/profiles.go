package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MohammadHarish521/Roastume/internal/models"
	"github.com/MohammadHarish521/Roastume/internal/services"
)

type ProfileHandler struct {
	db                 *gorm.DB
	countsDenormalized bool
	likes              *services.LikeService
}

func NewProfileHandler(db *gorm.DB, countsDenormalized bool, likes *services.LikeService) *ProfileHandler {
	return &ProfileHandler{db: db, countsDenormalized: countsDenormalized, likes: likes}
}

func (h *ProfileHandler) likeCount(resume models.Resume) int {
	if h.countsDenormalized {
		return resume.LikesCount
	}
	count, err := h.likes.Count(resume.ID)
	if err != nil {
		return 0
	}
	return count
}

func (h *ProfileHandler) commentCount(resume models.Resume) int {
	if h.countsDenormalized {
		return resume.CommentsCount
	}
	var count int64
	h.db.Model(&models.Comment{}).Where("resume_id = ?", resume.ID).Count(&count)
	return int(count)
}

// GetProfile returns a user's public profile with their resumes
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	var user models.Profile
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var resumes []models.Resume
	h.db.Where("user_id = ?", user.ID).Preload("User").Order("created_at desc").Find(&resumes)

	resumeResponses := []gin.H{}
	for _, resume := range resumes {
		resumeResponses = append(resumeResponses, gin.H{
			"id":        resume.ID,
			"name":      resume.Name,
			"blurb":     resume.Blurb,
			"likes":     h.likeCount(resume),
			"comments":  h.commentCount(resume),
			"fileUrl":   resume.FileURL,
			"fileType":  resume.FileType,
			"createdAt": resume.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"avatar":   user.Avatar,
		},
		"resumes": resumeResponses,
	})
}

// UpdateProfile updates the caller's own profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.Profile
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Username != "" && input.Username != user.Username {
		var existing models.Profile
		if err := h.db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
		user.Username = input.Username
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"avatar":   user.Avatar,
	})
}
