package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleNormal Role = "NORMAL"
	RolePro    Role = "PRO"
	RoleAdmin  Role = "ADMIN"
)

type ChallengeStatus string

const (
	ChallengeRecruiting ChallengeStatus = "RECRUITING"
	ChallengeFilled     ChallengeStatus = "FILLED"
	ChallengeClosed     ChallengeStatus = "CLOSED"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
	ApplicationDeleted  ApplicationStatus = "DELETED"
)

type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Nickname     string `json:"nickname"`
	Role         Role   `gorm:"default:NORMAL" json:"role"`
	RefreshToken string `json:"-"`
}

// Application is a challenge proposal awaiting admin review. Approving one
// promotes it to a Challenge; the two rows stay linked for the audit trail.
type Application struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	CreatorID string `gorm:"index" json:"creator_id"`
	Creator   User   `gorm:"foreignKey:CreatorID" json:"creator"`

	Title           string            `json:"title"`
	DocumentType    string            `json:"document_type"`
	Category        string            `json:"category"`
	Description     string            `json:"description"`
	OriginalLink    string            `json:"original_link"`
	MaxParticipants int               `json:"max_participants"`
	DeadlineAt      time.Time         `json:"deadline_at"`
	Status          ApplicationStatus `gorm:"index;default:PENDING" json:"status"`
	AdminFeedback   string            `json:"admin_feedback"`
}

type Challenge struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ApplicationID string `gorm:"uniqueIndex" json:"application_id"`
	CreatorID     string `gorm:"index" json:"creator_id"`
	Creator       User   `gorm:"foreignKey:CreatorID" json:"creator"`

	Title           string          `json:"title"`
	DocumentType    string          `json:"document_type"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	OriginalLink    string          `json:"original_link"`
	MaxParticipants int             `json:"max_participants"`
	DeadlineAt      time.Time       `gorm:"index:idx_status_deadline,priority:2" json:"deadline_at"`
	Status          ChallengeStatus `gorm:"index:idx_status_deadline,priority:1;default:RECRUITING" json:"status"`

	Works []Work `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"-"`
}

type Work struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_challenge_rank,priority:3" json:"created_at"`
	UpdatedAt time.Time

	ChallengeID string `gorm:"uniqueIndex:idx_challenge_worker;index:idx_challenge_rank,priority:1" json:"challenge_id"`
	WorkerID    string `gorm:"uniqueIndex:idx_challenge_worker;index" json:"worker_id"`
	Worker      User   `gorm:"foreignKey:WorkerID" json:"worker"`

	Content    string `json:"content"`
	LikeCount  int    `gorm:"index:idx_challenge_rank,priority:2,sort:desc;default:0" json:"like_count"`
	IsSelected bool   `gorm:"default:false" json:"is_selected"`

	Likes []Like `gorm:"foreignKey:WorkID;constraint:OnDelete:CASCADE" json:"-"`
}

// Like has no attributes beyond existence; the (work, user) pair is the identity.
type Like struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time

	WorkID string `gorm:"uniqueIndex:idx_work_user" json:"work_id"`
	UserID string `gorm:"uniqueIndex:idx_work_user" json:"user_id"`
}

type Comment struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	WorkID   string `gorm:"index" json:"work_id"`
	AuthorID string `gorm:"index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	Content string `json:"content"`
}

type Notification struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time

	UserID  string `gorm:"index" json:"user_id"`
	Message string `json:"message"`
}
