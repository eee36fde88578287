package services

import "errors"

var (
	ErrInvalidVoteType = errors.New("invalid vote type")
	ErrCommentNotFound = errors.New("comment not found")
	ErrResumeNotFound  = errors.New("resume not found")
)
