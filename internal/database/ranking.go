package database

import (
	"github.com/docthru/docthru/internal/database/models"
	"gorm.io/gorm"
)

// RankedWork is a work row annotated with its standard-competition rank: tied
// like counts share a rank, and the next distinct count resumes at its 1-based
// global position.
type RankedWork struct {
	models.Work
	Rank int `json:"rank"`
}

// ChallengeRanking returns one page of the challenge standings plus the total
// work count. Ranks are globally correct for any page: the first item's rank
// is derived from how many works in the whole challenge score strictly higher,
// and within the page a score drop resets the rank to the item's global
// position. The whole call runs inside one transaction so every row it touches
// comes from a single snapshot.
func ChallengeRanking(db *gorm.DB, challengeID string, offset, limit int) (int64, []RankedWork, error) {
	var total int64
	var ranked []RankedWork

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Work{}).
			Where("challenge_id = ?", challengeID).
			Count(&total).Error; err != nil {
			return err
		}

		var works []models.Work
		if err := tx.Preload("Worker").
			Where("challenge_id = ?", challengeID).
			Order("like_count desc, created_at asc").
			Offset(offset).Limit(limit).
			Find(&works).Error; err != nil {
			return err
		}
		if len(works) == 0 {
			ranked = []RankedWork{}
			return nil
		}

		// Rank of the page head: everyone scoring strictly higher sits above it.
		var higher int64
		if err := tx.Model(&models.Work{}).
			Where("challenge_id = ? AND like_count > ?", challengeID, works[0].LikeCount).
			Count(&higher).Error; err != nil {
			return err
		}

		rank := int(higher) + 1
		ranked = make([]RankedWork, 0, len(works))
		for i, w := range works {
			if i > 0 && w.LikeCount < works[i-1].LikeCount {
				rank = offset + i + 1
			}
			ranked = append(ranked, RankedWork{Work: w, Rank: rank})
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return total, ranked, nil
}
