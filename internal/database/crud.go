package database

import (
	"errors"
	"fmt"

	"github.com/docthru/docthru/internal/database/models"
	"gorm.io/gorm"
)

// User CRUD
func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return nil, err
	}
	return &user, nil
}

func UpdateUser(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

// Application CRUD
func CreateApplication(db *gorm.DB, app *models.Application) error {
	return db.Create(app).Error
}

func GetApplication(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := db.Preload("Creator").Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: application %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &app, nil
}

// ApplicationFilter narrows ListApplications; zero values mean no filter.
type ApplicationFilter struct {
	CreatorID string
	Status    models.ApplicationStatus
	Offset    int
	Limit     int
}

func ListApplications(db *gorm.DB, f ApplicationFilter) (int64, []models.Application, error) {
	q := db.Model(&models.Application{})
	if f.CreatorID != "" {
		q = q.Where("creator_id = ?", f.CreatorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var apps []models.Application
	if err := q.Preload("Creator").Order("created_at desc").
		Offset(f.Offset).Limit(f.Limit).Find(&apps).Error; err != nil {
		return 0, nil, err
	}
	return total, apps, nil
}

// Challenge CRUD
func GetChallenge(db *gorm.DB, id string) (*models.Challenge, error) {
	var ch models.Challenge
	if err := db.Preload("Creator").Where("id = ?", id).First(&ch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: challenge %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &ch, nil
}

// ChallengeFilter narrows ListChallenges; zero values mean no filter.
type ChallengeFilter struct {
	Status       models.ChallengeStatus
	Category     string
	DocumentType string
	Keyword      string
	WorkerID     string // only challenges the user has a work in
	Offset       int
	Limit        int
}

func ListChallenges(db *gorm.DB, f ChallengeFilter) (int64, []models.Challenge, error) {
	q := db.Model(&models.Challenge{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.DocumentType != "" {
		q = q.Where("document_type = ?", f.DocumentType)
	}
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR category LIKE ?", kw, kw, kw)
	}
	if f.WorkerID != "" {
		q = q.Where("id IN (?)", db.Model(&models.Work{}).
			Select("challenge_id").Where("worker_id = ?", f.WorkerID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var chs []models.Challenge
	if err := q.Preload("Creator").Order("created_at desc").
		Offset(f.Offset).Limit(f.Limit).Find(&chs).Error; err != nil {
		return 0, nil, err
	}
	return total, chs, nil
}

func UpdateChallenge(db *gorm.DB, ch *models.Challenge) error {
	return db.Save(ch).Error
}

// Work CRUD
func GetWork(db *gorm.DB, id string) (*models.Work, error) {
	var work models.Work
	if err := db.Preload("Worker").Where("id = ?", id).First(&work).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: work %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &work, nil
}

func UpdateWorkContent(db *gorm.DB, id, content string) error {
	return db.Model(&models.Work{}).Where("id = ?", id).Update("content", content).Error
}

func DeleteWork(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Work{}, "id = ?", id).Error
	})
}

func GetWorksByChallengeID(db *gorm.DB, challengeID string) ([]models.Work, error) {
	var works []models.Work
	if err := db.Where("challenge_id = ?", challengeID).Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

// Comment CRUD
func CreateComment(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func GetComment(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.Preload("Author").Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &comment, nil
}

func GetCommentsByWorkID(db *gorm.DB, workID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := db.Preload("Author").Where("work_id = ?", workID).
		Order("created_at desc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func UpdateCommentContent(db *gorm.DB, id, content string) error {
	return db.Model(&models.Comment{}).Where("id = ?", id).Update("content", content).Error
}

func DeleteComment(db *gorm.DB, id string) error {
	return db.Delete(&models.Comment{}, "id = ?", id).Error
}

// Notification CRUD
func CreateNotification(db *gorm.DB, n *models.Notification) error {
	return db.Create(n).Error
}

func GetNotificationsByUserID(db *gorm.DB, userID string) ([]models.Notification, error) {
	var ns []models.Notification
	if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

func GetNotification(db *gorm.DB, id string) (*models.Notification, error) {
	var n models.Notification
	if err := db.Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: notification %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &n, nil
}

func DeleteNotification(db *gorm.DB, id string) error {
	return db.Delete(&models.Notification{}, "id = ?", id).Error
}

func DeleteNotificationsByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
