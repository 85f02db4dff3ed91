package database

import (
	"errors"
	"testing"
	"time"

	"github.com/docthru/docthru/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedApplication(t *testing.T, db *gorm.DB) *models.Application {
	t.Helper()
	creator := seedUser(t, db, models.RoleNormal)
	app := &models.Application{
		ID:              uuid.NewString(),
		CreatorID:       creator.ID,
		Title:           "translate the docs",
		DocumentType:    "OFFICIAL",
		Category:        "API",
		MaxParticipants: 5,
		DeadlineAt:      time.Now().Add(7 * 24 * time.Hour),
		Status:          models.ApplicationPending,
	}
	if err := CreateApplication(db, app); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return app
}

func TestPromoteApplication(t *testing.T) {
	db := openTestDB(t)
	app := seedApplication(t, db)

	challenge, err := PromoteApplication(db, app.ID, "looks good")
	if err != nil {
		t.Fatal(err)
	}
	if challenge.Status != models.ChallengeRecruiting {
		t.Fatalf("new challenge must be RECRUITING, got %s", challenge.Status)
	}
	if challenge.MaxParticipants != app.MaxParticipants || challenge.Title != app.Title {
		t.Fatal("challenge must inherit the application's fields")
	}

	got, err := GetApplication(db, app.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.ApplicationApproved {
		t.Fatalf("application must be APPROVED, got %s", got.Status)
	}
}

func TestPromoteApplicationTwiceConflicts(t *testing.T) {
	db := openTestDB(t)
	app := seedApplication(t, db)

	if _, err := PromoteApplication(db, app.ID, ""); err != nil {
		t.Fatal(err)
	}
	_, err := PromoteApplication(db, app.ID, "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict on second promotion, got %v", err)
	}

	var count int64
	db.Model(&models.Challenge{}).Where("application_id = ?", app.ID).Count(&count)
	if count != 1 {
		t.Fatalf("want exactly 1 challenge for the application, got %d", count)
	}
}

func TestReviewApplicationReject(t *testing.T) {
	db := openTestDB(t)
	app := seedApplication(t, db)

	got, err := ReviewApplication(db, app.ID, models.ApplicationRejected, "not a fit")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.ApplicationRejected || got.AdminFeedback != "not a fit" {
		t.Fatalf("unexpected review result: %+v", got)
	}

	// A rejected application cannot be reviewed again.
	if _, err := ReviewApplication(db, app.ID, models.ApplicationRejected, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestRemoveChallengeCascades(t *testing.T) {
	db := openTestDB(t)
	app := seedApplication(t, db)
	challenge, err := PromoteApplication(db, app.ID, "")
	if err != nil {
		t.Fatal(err)
	}

	work := seedWork(t, db, challenge.ID, 0, time.Now())
	liker := seedUser(t, db, models.RoleNormal)
	if err := AddLike(db, work.ID, liker.ID); err != nil {
		t.Fatal(err)
	}
	comment := &models.Comment{ID: uuid.NewString(), WorkID: work.ID, AuthorID: liker.ID, Content: "nice"}
	if err := CreateComment(db, comment); err != nil {
		t.Fatal(err)
	}

	if err := RemoveChallenge(db, challenge.ID, "duplicate challenge"); err != nil {
		t.Fatal(err)
	}

	if _, err := GetChallenge(db, challenge.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("challenge must be gone, got %v", err)
	}
	if _, err := GetWork(db, work.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("work must be gone, got %v", err)
	}

	var likes, comments int64
	db.Model(&models.Like{}).Where("work_id = ?", work.ID).Count(&likes)
	db.Model(&models.Comment{}).Where("work_id = ?", work.ID).Count(&comments)
	if likes != 0 || comments != 0 {
		t.Fatalf("likes/comments must cascade, got %d/%d", likes, comments)
	}

	gotApp, err := GetApplication(db, app.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotApp.Status != models.ApplicationDeleted {
		t.Fatalf("application must be DELETED, got %s", gotApp.Status)
	}
	if gotApp.AdminFeedback != "duplicate challenge" {
		t.Fatalf("admin feedback not recorded: %q", gotApp.AdminFeedback)
	}
}
