package models

import "time"

type Comment struct {
	ID       int     `gorm:"primaryKey" json:"id"`
	ResumeID int     `gorm:"index;not null" json:"resume_id"`
	UserID   int     `gorm:"index" json:"user_id"`
	User     Profile `gorm:"foreignKey:UserID" json:"user"`
	ParentID *int    `json:"parent_id,omitempty"` // Nullable, set for replies
	Text     string  `gorm:"not null" json:"text"`

	// Denormalized counters, see Resume.LikesCount.
	UpvotesCount   int `gorm:"default:0" json:"upvotes_count"`
	DownvotesCount int `gorm:"default:0" json:"downvotes_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	Text     string `json:"text"`
	ParentID *int   `json:"parent_id,omitempty"`
}
