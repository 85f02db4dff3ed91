package database

import (
	"errors"
	"fmt"

	"github.com/docthru/docthru/internal/database/models"
	"gorm.io/gorm"
)

// AddLike records a user's vote for a work and bumps the denormalized counter
// in the same transaction, so the Like row and like_count never diverge.
func AddLike(db *gorm.DB, workID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var work models.Work
		if err := tx.Where("id = ?", workID).First(&work).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: work %s", ErrNotFound, workID)
			}
			return err
		}

		like := models.Like{WorkID: workID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: work %s already liked", ErrConflict, workID)
			}
			return err
		}

		// Relative update: concurrent likers on the same work must not lose
		// increments to a stale in-memory value.
		return tx.Model(&models.Work{}).Where("id = ?", workID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// RemoveLike withdraws a vote and decrements the counter atomically.
func RemoveLike(db *gorm.DB, workID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("work_id = ? AND user_id = ?", workID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: work %s not liked yet", ErrConflict, workID)
		}

		return tx.Model(&models.Work{}).Where("id = ?", workID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
}
