package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MohammadHarish521/Roastume/internal/models"
	"github.com/MohammadHarish521/Roastume/internal/services"
)

type ResumeHandler struct {
	db                 *gorm.DB
	countsDenormalized bool
	likes              *services.LikeService
	votes              *services.VoteService
}

func NewResumeHandler(db *gorm.DB, countsDenormalized bool, likes *services.LikeService, votes *services.VoteService) *ResumeHandler {
	return &ResumeHandler{db: db, countsDenormalized: countsDenormalized, likes: likes, votes: votes}
}

func (h *ResumeHandler) likeCount(resume models.Resume) int {
	if h.countsDenormalized {
		return resume.LikesCount
	}
	count, err := h.likes.Count(resume.ID)
	if err != nil {
		return 0
	}
	return count
}

func (h *ResumeHandler) commentCount(resume models.Resume) int {
	if h.countsDenormalized {
		return resume.CommentsCount
	}
	var count int64
	h.db.Model(&models.Comment{}).Where("resume_id = ?", resume.ID).Count(&count)
	return int(count)
}

// transformResume builds the wire shape the client expects; don't serialize
// the model directly.
func (h *ResumeHandler) transformResume(resume models.Resume) gin.H {
	return gin.H{
		"id":        resume.ID,
		"name":      resume.Name,
		"blurb":     resume.Blurb,
		"likes":     h.likeCount(resume),
		"comments":  h.commentCount(resume),
		"fileUrl":   resume.FileURL,
		"fileType":  resume.FileType,
		"ownerId":   resume.UserID,
		"avatar":    resume.User.Avatar,
		"createdAt": resume.CreatedAt,
	}
}

// GetResumes returns a page of resumes, newest first, optionally filtered by
// name
func (h *ResumeHandler) GetResumes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "9"))
	if pageSize < 1 || pageSize > 50 {
		pageSize = 9
	}
	search := c.Query("search")

	query := h.db.Model(&models.Resume{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resumes"})
		return
	}

	var resumes []models.Resume
	err := query.Preload("User").
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&resumes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resumes"})
		return
	}

	responses := []gin.H{}
	for _, resume := range resumes {
		responses = append(responses, h.transformResume(resume))
	}

	c.JSON(http.StatusOK, gin.H{"resumes": responses, "total": total})
}

// GetResume returns a single resume with its comments
func (h *ResumeHandler) GetResume(c *gin.Context) {
	resumeID := c.Param("id")

	var resume models.Resume
	if err := h.db.Preload("User").First(&resume, resumeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	var comments []models.Comment
	if err := h.db.Where("resume_id = ?", resume.ID).Preload("User").Order("created_at asc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	commentResponses := []gin.H{}
	for _, comment := range comments {
		up, down, err := h.votes.Counts(comment.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		commentResponses = append(commentResponses, gin.H{
			"id":        comment.ID,
			"author":    comment.User.Username,
			"avatar":    comment.User.Avatar,
			"text":      comment.Text,
			"parentId":  comment.ParentID,
			"upvotes":   up,
			"downvotes": down,
			"createdAt": comment.CreatedAt,
		})
	}

	response := h.transformResume(resume)
	response["comments"] = commentResponses

	c.JSON(http.StatusOK, gin.H{"resume": response})
}

// GetMyResumes returns the authenticated user's resumes
func (h *ResumeHandler) GetMyResumes(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var resumes []models.Resume
	err := h.db.Where("user_id = ?", userID).Preload("User").Order("created_at desc").Find(&resumes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resumes"})
		return
	}

	responses := []gin.H{}
	for _, resume := range resumes {
		responses = append(responses, h.transformResume(resume))
	}

	c.JSON(http.StatusOK, gin.H{"resumes": responses})
}

// CreateResume creates a new resume (PROTECTED - requires authentication)
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		Blurb    string `json:"blurb"`
		FileURL  string `json:"fileUrl"`
		FileType string `json:"fileType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	resume := models.Resume{
		UserID:   userID,
		Name:     input.Name,
		Blurb:    input.Blurb,
		FileURL:  input.FileURL,
		FileType: input.FileType,
	}

	if err := h.db.Create(&resume).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resume"})
		return
	}

	h.db.Preload("User").First(&resume, resume.ID)
	c.JSON(http.StatusCreated, gin.H{"resume": h.transformResume(resume)})
}

// UpdateResume updates a resume (owner only)
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var resume models.Resume
	if err := h.db.First(&resume, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	if resume.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own resumes"})
		return
	}

	var input models.CreateResumeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != "" {
		resume.Name = input.Name
	}
	resume.Blurb = input.Blurb
	if input.FileURL != "" {
		resume.FileURL = input.FileURL
	}
	if input.FileType != "" {
		resume.FileType = input.FileType
	}

	if err := h.db.Save(&resume).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resume"})
		return
	}

	h.db.Preload("User").First(&resume, resume.ID)
	c.JSON(http.StatusOK, gin.H{"resume": h.transformResume(resume)})
}

// DeleteResume deletes a resume and its comments, votes and likes (owner
// only). Notifications are append-only and stay behind.
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var resume models.Resume
	if err := h.db.First(&resume, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	if resume.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own resumes"})
		return
	}

	// Clean up the ledgers before the resume itself
	var commentIDs []int
	h.db.Model(&models.Comment{}).Where("resume_id = ?", resume.ID).Pluck("id", &commentIDs)
	if len(commentIDs) > 0 {
		h.db.Where("comment_id IN ?", commentIDs).Delete(&models.CommentVote{})
	}
	h.db.Where("resume_id = ?", resume.ID).Delete(&models.Comment{})
	h.db.Where("resume_id = ?", resume.ID).Delete(&models.Like{})

	if err := h.db.Delete(&resume).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted successfully"})
}

// LikeResume toggles the caller's like on a resume
func (h *ResumeHandler) LikeResume(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	resumeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	result, err := h.likes.Toggle(resumeID, userID)
	if err != nil {
		if errors.Is(err, services.ErrResumeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		log.Printf("like toggle failed for resume %d: %v", resumeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":      result.Liked,
		"likesCount": result.LikesCount,
	})
}
