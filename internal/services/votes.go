package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/MohammadHarish521/Roastume/internal/models"
)

// VoteResult is the outcome of a vote toggle: the caller's new vote state plus
// the comment's vote counts after the toggle.
type VoteResult struct {
	Voted     bool
	VoteType  string // empty when Voted is false
	Upvotes   int
	Downvotes int
}

// VoteService applies comment vote toggles. One vote per user per comment:
// voting the same way twice removes the vote, voting the other way swaps it.
type VoteService struct {
	db                 *gorm.DB
	countsDenormalized bool
}

func NewVoteService(db *gorm.DB, countsDenormalized bool) *VoteService {
	return &VoteService{db: db, countsDenormalized: countsDenormalized}
}

// Apply toggles userID's vote on commentID and returns the resulting state.
// The (comment_id, user_id) unique index is the backstop against concurrent
// double-submission; a lost insert race is retried as a fresh read-decide-write
// cycle rather than surfaced to the caller.
func (s *VoteService) Apply(commentID, userID int, voteType string) (*VoteResult, error) {
	if voteType != models.VoteTypeUp && voteType != models.VoteTypeDown {
		return nil, ErrInvalidVoteType
	}

	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		result, retry, err := s.applyOnce(commentID, userID, voteType)
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

func (s *VoteService) applyOnce(commentID, userID int, voteType string) (*VoteResult, bool, error) {
	var upDelta, downDelta int
	result := &VoteResult{}

	var existing models.CommentVote
	err := s.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error

	switch {
	case err == nil && existing.VoteType == voteType:
		// Same vote again: toggle off.
		res := s.db.Delete(&existing)
		if res.Error != nil {
			return nil, false, res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent request removed the row first; rerun the cycle.
			return nil, true, nil
		}
		result.Voted = false
		if voteType == models.VoteTypeUp {
			upDelta = -1
		} else {
			downDelta = -1
		}

	case err == nil:
		// Opposite vote: swap in place. The vote_type guard makes the update
		// a no-op when a concurrent request already changed or removed the
		// row.
		res := s.db.Model(&models.CommentVote{}).
			Where("id = ? AND vote_type = ?", existing.ID, existing.VoteType).
			Update("vote_type", voteType)
		if res.Error != nil {
			return nil, false, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, true, nil
		}
		result.Voted = true
		result.VoteType = voteType
		if voteType == models.VoteTypeUp {
			upDelta, downDelta = 1, -1
		} else {
			upDelta, downDelta = -1, 1
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.CommentVote{CommentID: commentID, UserID: userID, VoteType: voteType}
		if err := s.db.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent request inserted first; rerun the cycle
				// against the row it created.
				return nil, true, nil
			}
			return nil, false, err
		}
		result.Voted = true
		result.VoteType = voteType
		if voteType == models.VoteTypeUp {
			upDelta = 1
		} else {
			downDelta = 1
		}

	default:
		return nil, false, err
	}

	up, down, err := s.projectCounts(commentID, upDelta, downDelta)
	if err != nil {
		return nil, false, err
	}
	result.Upvotes = up
	result.Downvotes = down
	return result, false, nil
}

// projectCounts maintains and reads the comment's vote counts. On the
// denormalized path the counter columns are adjusted with atomic SQL
// increments and read back; if that write fails the ledger mutation stands and
// the counts are derived from the ledger instead.
func (s *VoteService) projectCounts(commentID, upDelta, downDelta int) (int, int, error) {
	if s.countsDenormalized {
		err := s.db.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumns(map[string]interface{}{
				"upvotes_count":   gorm.Expr("upvotes_count + ?", upDelta),
				"downvotes_count": gorm.Expr("downvotes_count + ?", downDelta),
			}).Error
		if err == nil {
			var comment models.Comment
			if err := s.db.Select("upvotes_count", "downvotes_count").First(&comment, commentID).Error; err != nil {
				return 0, 0, err
			}
			return comment.UpvotesCount, comment.DownvotesCount, nil
		}
		log.Printf("vote counter update failed for comment %d, falling back to derived counts: %v", commentID, err)
	}
	return s.deriveCounts(commentID)
}

func (s *VoteService) deriveCounts(commentID int) (int, int, error) {
	var up, down int64
	if err := s.db.Model(&models.CommentVote{}).
		Where("comment_id = ? AND vote_type = ?", commentID, models.VoteTypeUp).
		Count(&up).Error; err != nil {
		return 0, 0, err
	}
	if err := s.db.Model(&models.CommentVote{}).
		Where("comment_id = ? AND vote_type = ?", commentID, models.VoteTypeDown).
		Count(&down).Error; err != nil {
		return 0, 0, err
	}
	return int(up), int(down), nil
}

// Counts returns the comment's current vote counts without applying a toggle.
func (s *VoteService) Counts(commentID int) (int, int, error) {
	if s.countsDenormalized {
		var comment models.Comment
		if err := s.db.Select("upvotes_count", "downvotes_count").First(&comment, commentID).Error; err != nil {
			return 0, 0, err
		}
		return comment.UpvotesCount, comment.DownvotesCount, nil
	}
	return s.deriveCounts(commentID)
}
