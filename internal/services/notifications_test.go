package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammadHarish521/Roastume/internal/models"
)

func TestListIsNewestFirstAndCapped(t *testing.T) {
	db := setupTestDB(t)
	notifications := NewNotificationService(db, nil)

	owner := createTestProfile(t, db, "owner")
	liker := createTestProfile(t, db, "liker")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 55; i++ {
		n := models.Notification{
			UserID:    owner.ID,
			ActorID:   liker.ID,
			Kind:      models.NotificationKindLike,
			Message:   fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(&n).Error)
	}

	list, err := notifications.List(owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 50)
	assert.Equal(t, "message 54", list[0].Message)
	assert.Equal(t, "message 5", list[49].Message)
}

func TestListOnlyReturnsOwnNotifications(t *testing.T) {
	db := setupTestDB(t)
	notifications := NewNotificationService(db, nil)

	owner := createTestProfile(t, db, "owner")
	other := createTestProfile(t, db, "other")

	n := models.Notification{UserID: other.ID, ActorID: owner.ID, Kind: models.NotificationKindLike, Message: "hi"}
	require.NoError(t, db.Create(&n).Error)

	list, err := notifications.List(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMarkReadIgnoresForeignNotifications(t *testing.T) {
	db := setupTestDB(t)
	notifications := NewNotificationService(db, nil)

	owner := createTestProfile(t, db, "owner")
	other := createTestProfile(t, db, "other")

	n := models.Notification{UserID: owner.ID, ActorID: other.ID, Kind: models.NotificationKindLike, Message: "hi"}
	require.NoError(t, db.Create(&n).Error)

	// Someone else's id and a missing id both succeed without mutating
	// anything.
	require.NoError(t, notifications.MarkRead(n.ID, other.ID))
	require.NoError(t, notifications.MarkRead(99999, owner.ID))

	var stored models.Notification
	require.NoError(t, db.First(&stored, n.ID).Error)
	assert.False(t, stored.IsRead)

	require.NoError(t, notifications.MarkRead(n.ID, owner.ID))
	require.NoError(t, db.First(&stored, n.ID).Error)
	assert.True(t, stored.IsRead)
}

func TestMarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	notifications := NewNotificationService(db, nil)

	owner := createTestProfile(t, db, "owner")
	liker := createTestProfile(t, db, "liker")

	for i := 0; i < 3; i++ {
		n := models.Notification{UserID: owner.ID, ActorID: liker.ID, Kind: models.NotificationKindLike, Message: fmt.Sprintf("message %d", i)}
		require.NoError(t, db.Create(&n).Error)
	}

	require.NoError(t, notifications.MarkAllRead(owner.ID))

	var unread int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", owner.ID, false).
		Count(&unread).Error)
	assert.EqualValues(t, 0, unread)

	// Notifications created afterwards start unread again.
	n := models.Notification{UserID: owner.ID, ActorID: liker.ID, Kind: models.NotificationKindLike, Message: "new"}
	require.NoError(t, db.Create(&n).Error)

	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", owner.ID, false).
		Count(&unread).Error)
	assert.EqualValues(t, 1, unread)
}
