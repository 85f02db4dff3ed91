package database

import (
	"github.com/docthru/docthru/internal/database/models"
	"gorm.io/gorm"
)

const (
	proComboThreshold  = 5  // participation AND selection
	proSingleThreshold = 10 // either alone
)

// ReevaluateUserRole recomputes a user's tier from their works. Participation
// and selection counts are derived queries, never stored, so they cannot drift
// from the work table. ADMIN accounts are exempt.
func ReevaluateUserRole(db *gorm.DB, userID string) (models.Role, error) {
	user, err := GetUserByID(db, userID)
	if err != nil {
		return "", err
	}
	if user.Role == models.RoleAdmin {
		return models.RoleAdmin, nil
	}

	var participation, selected int64
	if err := db.Model(&models.Work{}).
		Where("worker_id = ?", userID).
		Count(&participation).Error; err != nil {
		return "", err
	}
	if err := db.Model(&models.Work{}).
		Where("worker_id = ? AND is_selected = ?", userID, true).
		Count(&selected).Error; err != nil {
		return "", err
	}

	role := models.RoleNormal
	if (participation >= proComboThreshold && selected >= proComboThreshold) ||
		participation >= proSingleThreshold || selected >= proSingleThreshold {
		role = models.RolePro
	}

	if role != user.Role {
		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("role", role).Error; err != nil {
			return "", err
		}
	}
	return role, nil
}
