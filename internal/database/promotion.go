package database

import (
	"errors"
	"fmt"

	"github.com/docthru/docthru/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoteApplication approves an application and spawns its challenge in one
// transaction. A second approval of the same application is a Conflict; the
// challenge's unique application_id index backs that check.
func PromoteApplication(db *gorm.DB, applicationID, adminFeedback string) (*models.Challenge, error) {
	challenge := &models.Challenge{ID: uuid.NewString()}

	err := db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Where("id = ?", applicationID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Challenge{}).
			Where("application_id = ?", applicationID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: application %s already promoted", ErrConflict, applicationID)
		}

		if err := tx.Model(&models.Application{}).Where("id = ?", applicationID).
			Updates(map[string]interface{}{
				"status":         models.ApplicationApproved,
				"admin_feedback": adminFeedback,
			}).Error; err != nil {
			return err
		}

		challenge.ApplicationID = app.ID
		challenge.CreatorID = app.CreatorID
		challenge.Title = app.Title
		challenge.DocumentType = app.DocumentType
		challenge.Category = app.Category
		challenge.Description = app.Description
		challenge.OriginalLink = app.OriginalLink
		challenge.MaxParticipants = app.MaxParticipants
		challenge.DeadlineAt = app.DeadlineAt
		challenge.Status = models.ChallengeRecruiting

		if err := tx.Create(challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: application %s already promoted", ErrConflict, applicationID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return challenge, nil
}

// ReviewApplication records a rejection or deletion verdict without spawning
// a challenge. Approval goes through PromoteApplication instead.
func ReviewApplication(db *gorm.DB, applicationID string, status models.ApplicationStatus, adminFeedback string) (*models.Application, error) {
	var app models.Application
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", applicationID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
			}
			return err
		}
		if app.Status != models.ApplicationPending {
			return fmt.Errorf("%w: application %s already reviewed", ErrConflict, applicationID)
		}
		if err := tx.Model(&models.Application{}).Where("id = ?", applicationID).
			Updates(map[string]interface{}{
				"status":         status,
				"admin_feedback": adminFeedback,
			}).Error; err != nil {
			return err
		}
		app.Status = status
		app.AdminFeedback = adminFeedback
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// RemoveChallenge deletes a challenge and flips its application to DELETED,
// recording the admin's reason. Works, likes and comments under the challenge
// go with it.
func RemoveChallenge(db *gorm.DB, challengeID, adminFeedback string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: challenge %s", ErrNotFound, challengeID)
			}
			return err
		}

		var workIDs []string
		if err := tx.Model(&models.Work{}).
			Where("challenge_id = ?", challengeID).
			Pluck("id", &workIDs).Error; err != nil {
			return err
		}
		if len(workIDs) > 0 {
			if err := tx.Where("work_id IN ?", workIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("work_id IN ?", workIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("challenge_id = ?", challengeID).Delete(&models.Work{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Application{}).Where("id = ?", challenge.ApplicationID).
			Updates(map[string]interface{}{
				"status":         models.ApplicationDeleted,
				"admin_feedback": adminFeedback,
			}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Challenge{}, "id = ?", challengeID).Error
	})
}
