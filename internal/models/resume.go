package models

import "time"

type Resume struct {
	ID       int     `gorm:"primaryKey" json:"id"`
	UserID   int     `gorm:"index" json:"user_id"`
	User     Profile `gorm:"foreignKey:UserID" json:"user"`
	Name     string  `gorm:"not null" json:"name"`
	Blurb    string  `json:"blurb"`
	FileURL  string  `json:"file_url"`
	FileType string  `json:"file_type"` // "pdf" or "image"

	// Denormalized counters, kept in step with the likes and comments tables.
	// When COUNTS_DENORMALIZED is off these columns are ignored and counts are
	// derived from the ledger tables instead.
	LikesCount    int `gorm:"default:0" json:"likes_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateResumeRequest struct {
	Name     string `json:"name"`
	Blurb    string `json:"blurb"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
}
