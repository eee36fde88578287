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

type CommentHandler struct {
	db                 *gorm.DB
	countsDenormalized bool
	votes              *services.VoteService
}

func NewCommentHandler(db *gorm.DB, countsDenormalized bool, votes *services.VoteService) *CommentHandler {
	return &CommentHandler{db: db, countsDenormalized: countsDenormalized, votes: votes}
}

func (h *CommentHandler) transformComment(comment models.Comment) (gin.H, error) {
	up, down, err := h.votes.Counts(comment.ID)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"id":        comment.ID,
		"author":    comment.User.Username,
		"avatar":    comment.User.Avatar,
		"text":      comment.Text,
		"parentId":  comment.ParentID,
		"upvotes":   up,
		"downvotes": down,
		"createdAt": comment.CreatedAt,
	}, nil
}

// CreateComment adds a comment to a resume
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	var resume models.Resume
	if err := h.db.First(&resume, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	// Replies must point at an existing comment on the same resume.
	if input.ParentID != nil {
		var parent models.Comment
		if err := h.db.First(&parent, *input.ParentID).Error; err != nil || parent.ResumeID != resume.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent comment"})
			return
		}
	}

	comment := models.Comment{
		ResumeID: resume.ID,
		UserID:   userID,
		ParentID: input.ParentID,
		Text:     input.Text,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	// Counter maintenance is best-effort; the comment row is the source of
	// truth.
	if h.countsDenormalized {
		err := h.db.Model(&models.Resume{}).Where("id = ?", resume.ID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
		if err != nil {
			log.Printf("comments counter update failed for resume %d: %v", resume.ID, err)
		}
	}

	h.db.Preload("User").First(&comment, comment.ID)
	response, err := h.transformComment(comment)
	if err != nil {
		log.Printf("fetching vote counts for comment %d failed: %v", comment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": response})
}

// GetComment returns a single comment with its replies
func (h *CommentHandler) GetComment(c *gin.Context) {
	var comment models.Comment
	if err := h.db.Preload("User").First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var replies []models.Comment
	h.db.Where("parent_id = ?", comment.ID).Preload("User").Order("created_at asc").Find(&replies)

	replyResponses := []gin.H{}
	for _, reply := range replies {
		replyResponse, err := h.transformComment(reply)
		if err != nil {
			log.Printf("fetching vote counts for comment %d failed: %v", reply.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
			return
		}
		replyResponses = append(replyResponses, replyResponse)
	}

	response, err := h.transformComment(comment)
	if err != nil {
		log.Printf("fetching vote counts for comment %d failed: %v", comment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
		return
	}
	response["replies"] = replyResponses

	c.JSON(http.StatusOK, gin.H{"comment": response})
}

// UpdateComment updates a comment (owner only)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	comment.Text = input.Text
	if err := h.db.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	h.db.Preload("User").First(&comment, comment.ID)
	response, err := h.transformComment(comment)
	if err != nil {
		log.Printf("fetching vote counts for comment %d failed: %v", comment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": response})
}

// DeleteComment deletes a comment and its votes (owner only)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	// Clean up votes on this comment too
	h.db.Where("comment_id = ?", comment.ID).Delete(&models.CommentVote{})

	if err := h.db.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	if h.countsDenormalized {
		err := h.db.Model(&models.Resume{}).Where("id = ?", comment.ResumeID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - ?", 1)).Error
		if err != nil {
			log.Printf("comments counter update failed for resume %d: %v", comment.ResumeID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// VoteComment applies an upvote/downvote toggle on a comment. Voting the same
// way twice removes the vote, voting the other way swaps it.
func (h *CommentHandler) VoteComment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var input struct {
		VoteType string `json:"voteType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type. Must be 'upvote' or 'downvote'"})
		return
	}

	result, err := h.votes.Apply(commentID, userID, input.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVoteType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type. Must be 'upvote' or 'downvote'"})
		case errors.Is(err, services.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		default:
			log.Printf("vote toggle failed for comment %d: %v", commentID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply vote"})
		}
		return
	}

	var voteType interface{}
	if result.Voted {
		voteType = result.VoteType
	}

	c.JSON(http.StatusOK, gin.H{
		"voted":     result.Voted,
		"voteType":  voteType,
		"upvotes":   result.Upvotes,
		"downvotes": result.Downvotes,
	})
}
