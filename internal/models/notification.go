package models

import "time"

const NotificationKindLike = "like"

// Notification is append-only: rows are created when someone likes a resume
// and only ever mutated by the recipient marking them read.
type Notification struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"index;not null" json:"user_id"` // Recipient
	ActorID   int       `json:"actor_id"`
	Kind      string    `gorm:"size:20;not null" json:"kind"`
	ResumeID  int       `json:"resume_id"`
	Message   string    `json:"message"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
