package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/MohammadHarish521/Roastume/internal/database"
	"github.com/MohammadHarish521/Roastume/internal/models"
)

// setupTestDB starts a throwaway postgres container and returns a migrated
// gorm handle. Skipped under -short.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	svc, err := database.Open(connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = svc.Close()
	})

	return svc.GetDB()
}

func createTestProfile(t *testing.T, db *gorm.DB, username string) models.Profile {
	t.Helper()
	profile := models.Profile{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		Password:     "hashed",
		AuthProvider: "email",
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

func createTestResume(t *testing.T, db *gorm.DB, owner models.Profile, name string) models.Resume {
	t.Helper()
	resume := models.Resume{
		UserID:   owner.ID,
		Name:     name,
		Blurb:    "please roast",
		FileURL:  "https://files.example.com/resume.pdf",
		FileType: "pdf",
	}
	require.NoError(t, db.Create(&resume).Error)
	return resume
}

func createTestComment(t *testing.T, db *gorm.DB, resume models.Resume, author models.Profile, text string) models.Comment {
	t.Helper()
	comment := models.Comment{
		ResumeID: resume.ID,
		UserID:   author.ID,
		Text:     text,
	}
	require.NoError(t, db.Create(&comment).Error)
	return comment
}
