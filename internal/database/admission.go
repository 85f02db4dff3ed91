package database

import (
	"errors"
	"fmt"

	"github.com/docthru/docthru/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitWork admits a work into a challenge. The whole sequence — challenge
// read, duplicate check, capacity count, insert, and the conditional
// RECRUITING→FILLED flip — runs in one serializable transaction so two
// submitters racing for the last slot can never both commit.
func SubmitWork(db *gorm.DB, challengeID, workerID, content string) (*models.Work, error) {
	work := &models.Work{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		WorkerID:    workerID,
		Content:     content,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: challenge %s", ErrNotFound, challengeID)
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Work{}).
			Where("challenge_id = ? AND worker_id = ?", challengeID, workerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: already participating in challenge %s", ErrConflict, challengeID)
		}

		var current int64
		if err := tx.Model(&models.Work{}).
			Where("challenge_id = ?", challengeID).
			Count(&current).Error; err != nil {
			return err
		}

		if challenge.Status != models.ChallengeRecruiting || current >= int64(challenge.MaxParticipants) {
			return fmt.Errorf("%w: challenge %s is full or no longer recruiting", ErrConflict, challengeID)
		}

		if err := tx.Create(work).Error; err != nil {
			// The (challenge_id, worker_id) unique index backs the duplicate
			// check above in case a concurrent submit slipped past it.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: already participating in challenge %s", ErrConflict, challengeID)
			}
			return err
		}

		// Recount after the insert; if more writers got in than the capacity
		// allows, roll everything back.
		var after int64
		if err := tx.Model(&models.Work{}).
			Where("challenge_id = ?", challengeID).
			Count(&after).Error; err != nil {
			return err
		}
		if after > int64(challenge.MaxParticipants) {
			return fmt.Errorf("%w: challenge %s is full", ErrConflict, challengeID)
		}

		if after >= int64(challenge.MaxParticipants) {
			// Conditional write: only a still-recruiting challenge may flip to
			// FILLED, so the transition can never go backward.
			if err := tx.Model(&models.Challenge{}).
				Where("id = ? AND status = ?", challengeID, models.ChallengeRecruiting).
				Update("status", models.ChallengeFilled).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return work, nil
}
