package database

import (
	"errors"
	"fmt"

	"github.com/docthru/docthru/internal/database/models"
	"gorm.io/gorm"
)

// ClosureResult reports what a CloseExpiredChallenge call actually did.
type ClosureResult struct {
	Closed       bool
	Challenge    models.Challenge
	Winners      []models.Work
	Participants []models.Work
}

// CloseExpiredChallenge closes one challenge and crowns its winners: every
// work tied at the maximum like count is selected. The status re-read inside
// the transaction is the idempotency gate — only one caller observes
// RECRUITING and wins the race to flip it; everyone else sees Closed=false
// and does nothing.
func CloseExpiredChallenge(db *gorm.DB, challengeID string) (*ClosureResult, error) {
	result := &ClosureResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: challenge %s", ErrNotFound, challengeID)
			}
			return err
		}
		result.Challenge = challenge

		if challenge.Status == models.ChallengeClosed {
			// Another sweep already processed it.
			return nil
		}

		var works []models.Work
		if err := tx.Where("challenge_id = ?", challengeID).
			Order("like_count desc, created_at asc").
			Find(&works).Error; err != nil {
			return err
		}
		result.Participants = works

		if len(works) > 0 {
			maxLikes := works[0].LikeCount
			for _, w := range works {
				if w.LikeCount == maxLikes {
					result.Winners = append(result.Winners, w)
				}
			}
			if err := tx.Model(&models.Work{}).
				Where("challenge_id = ? AND like_count = ?", challengeID, maxLikes).
				Update("is_selected", true).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Challenge{}).
			Where("id = ?", challengeID).
			Update("status", models.ChallengeClosed).Error; err != nil {
			return err
		}
		result.Closed = true
		result.Challenge.Status = models.ChallengeClosed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindExpiredChallenges lists challenges whose deadline has passed while still
// accepting participants. FILLED challenges are included: reaching capacity
// does not close a challenge, the deadline does.
func FindExpiredChallenges(db *gorm.DB) ([]models.Challenge, error) {
	var challenges []models.Challenge
	now := db.NowFunc()
	if err := db.Where("status IN ? AND deadline_at <= ?",
		[]models.ChallengeStatus{models.ChallengeRecruiting, models.ChallengeFilled}, now).
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}
