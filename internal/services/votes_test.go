package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammadHarish521/Roastume/internal/models"
)

func TestVoteToggleOffIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	votes := NewVoteService(db, true)

	author := createTestProfile(t, db, "author")
	voter := createTestProfile(t, db, "voter")
	resume := createTestResume(t, db, author, "Backend Resume")
	comment := createTestComment(t, db, resume, author, "roast me")

	result, err := votes.Apply(comment.ID, voter.ID, models.VoteTypeUp)
	require.NoError(t, err)
	assert.True(t, result.Voted)
	assert.Equal(t, models.VoteTypeUp, result.VoteType)
	assert.Equal(t, 1, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)

	// Same vote again removes it and counts return to the pre-vote values.
	result, err = votes.Apply(comment.ID, voter.ID, models.VoteTypeUp)
	require.NoError(t, err)
	assert.False(t, result.Voted)
	assert.Empty(t, result.VoteType)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)

	var rows int64
	require.NoError(t, db.Model(&models.CommentVote{}).Where("comment_id = ?", comment.ID).Count(&rows).Error)
	assert.EqualValues(t, 0, rows)
}

func TestVoteSwap(t *testing.T) {
	db := setupTestDB(t)
	votes := NewVoteService(db, true)

	author := createTestProfile(t, db, "author")
	voter := createTestProfile(t, db, "voter")
	resume := createTestResume(t, db, author, "Backend Resume")
	comment := createTestComment(t, db, resume, author, "roast me")

	_, err := votes.Apply(comment.ID, voter.ID, models.VoteTypeUp)
	require.NoError(t, err)

	result, err := votes.Apply(comment.ID, voter.ID, models.VoteTypeDown)
	require.NoError(t, err)
	assert.True(t, result.Voted)
	assert.Equal(t, models.VoteTypeDown, result.VoteType)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)

	var stored []models.CommentVote
	require.NoError(t, db.Where("comment_id = ? AND user_id = ?", comment.ID, voter.ID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, models.VoteTypeDown, stored[0].VoteType)
}

func TestVoteRejectsUnknownKind(t *testing.T) {
	db := setupTestDB(t)
	votes := NewVoteService(db, true)

	author := createTestProfile(t, db, "author")
	resume := createTestResume(t, db, author, "Backend Resume")
	comment := createTestComment(t, db, resume, author, "roast me")

	_, err := votes.Apply(comment.ID, author.ID, "sideways")
	assert.ErrorIs(t, err, ErrInvalidVoteType)
}

func TestVoteMissingComment(t *testing.T) {
	db := setupTestDB(t)
	votes := NewVoteService(db, true)

	voter := createTestProfile(t, db, "voter")

	_, err := votes.Apply(99999, voter.ID, models.VoteTypeUp)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestVoteDerivedCountsFallback(t *testing.T) {
	db := setupTestDB(t)
	votes := NewVoteService(db, false)

	author := createTestProfile(t, db, "author")
	voterA := createTestProfile(t, db, "voter-a")
	voterB := createTestProfile(t, db, "voter-b")
	resume := createTestResume(t, db, author, "Backend Resume")
	comment := createTestComment(t, db, resume, author, "roast me")

	_, err := votes.Apply(comment.ID, voterA.ID, models.VoteTypeUp)
	require.NoError(t, err)
	result, err := votes.Apply(comment.ID, voterB.ID, models.VoteTypeDown)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)

	// The counter columns are never touched on the fallback path.
	var stored models.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.Equal(t, 0, stored.UpvotesCount)
	assert.Equal(t, 0, stored.DownvotesCount)
}

func TestVoteUniquenessUnderConcurrentRequests(t *testing.T) {
	db := setupTestDB(t)
	votes := NewVoteService(db, false)

	author := createTestProfile(t, db, "author")
	voter := createTestProfile(t, db, "voter")
	resume := createTestResume(t, db, author, "Backend Resume")
	comment := createTestComment(t, db, resume, author, "roast me")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Losing a race is mapped to a benign outcome, never corruption;
			// only a fully exhausted retry budget surfaces an error, and that
			// still leaves the ledger intact.
			_, _ = votes.Apply(comment.ID, voter.ID, models.VoteTypeUp)
		}()
	}
	wg.Wait()

	var rows int64
	require.NoError(t, db.Model(&models.CommentVote{}).
		Where("comment_id = ? AND user_id = ?", comment.ID, voter.ID).
		Count(&rows).Error)
	assert.LessOrEqual(t, rows, int64(1))
}
