package database

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docthru/docthru/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    fmt.Sprintf("%s@test.local", uuid.NewString()[:8]),
		Nickname: "tester",
		Role:     role,
	}
	if err := CreateUser(db, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedChallenge(t *testing.T, db *gorm.DB, maxParticipants int, deadline time.Time) *models.Challenge {
	t.Helper()
	creator := seedUser(t, db, models.RoleNormal)
	ch := &models.Challenge{
		ID:              uuid.NewString(),
		ApplicationID:   uuid.NewString(),
		CreatorID:       creator.ID,
		Title:           "test challenge",
		DocumentType:    "OFFICIAL",
		Category:        "NEXTJS",
		MaxParticipants: maxParticipants,
		DeadlineAt:      deadline,
		Status:          models.ChallengeRecruiting,
	}
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("seed challenge: %v", err)
	}
	return ch
}

func seedWork(t *testing.T, db *gorm.DB, challengeID string, likeCount int, createdAt time.Time) *models.Work {
	t.Helper()
	worker := seedUser(t, db, models.RoleNormal)
	work := &models.Work{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		WorkerID:    worker.ID,
		Content:     "translated text",
		LikeCount:   likeCount,
		CreatedAt:   createdAt,
	}
	if err := db.Create(work).Error; err != nil {
		t.Fatalf("seed work: %v", err)
	}
	return work
}
