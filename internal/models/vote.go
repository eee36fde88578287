package models

import "time"

// Vote kinds accepted by the comment vote endpoint.
const (
	VoteTypeUp   = "upvote"
	VoteTypeDown = "downvote"
)

// CommentVote tracks individual user votes on comments. The composite unique
// index is what keeps concurrent double-submissions from creating two rows for
// the same (comment, user) pair.
type CommentVote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CommentID int       `gorm:"uniqueIndex:idx_comment_voter;not null" json:"comment_id"`
	UserID    int       `gorm:"uniqueIndex:idx_comment_voter;not null" json:"user_id"`
	VoteType  string    `gorm:"size:10;not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
