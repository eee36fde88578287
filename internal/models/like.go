package models

import "time"

// Like is a single-row ledger entry: presence means the user likes the resume.
// At most one row per (resume, user), enforced by the composite unique index.
type Like struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	ResumeID  int       `gorm:"uniqueIndex:idx_resume_liker;not null" json:"resume_id"`
	UserID    int       `gorm:"uniqueIndex:idx_resume_liker;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
