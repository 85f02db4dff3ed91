package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/database/models"
	"github.com/docthru/docthru/internal/pubsub"
	"github.com/docthru/docthru/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) createApplication(c *gin.Context) {
	var req struct {
		Title           string    `json:"title" binding:"required"`
		DocumentType    string    `json:"document_type" binding:"required"`
		Category        string    `json:"category" binding:"required"`
		Description     string    `json:"description"`
		OriginalLink    string    `json:"original_link"`
		MaxParticipants int       `json:"max_participants" binding:"required,min=1"`
		DeadlineAt      time.Time `json:"deadline_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	app := models.Application{
		ID:              uuid.NewString(),
		CreatorID:       c.GetString("userID"),
		Title:           req.Title,
		DocumentType:    req.DocumentType,
		Category:        req.Category,
		Description:     req.Description,
		OriginalLink:    req.OriginalLink,
		MaxParticipants: req.MaxParticipants,
		DeadlineAt:      req.DeadlineAt,
		Status:          models.ApplicationPending,
	}
	if err := database.CreateApplication(h.db, &app); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, app, "Application submitted")
}

func (h *Handler) listApplications(c *gin.Context) {
	offset, limit := pagination(c)

	filter := database.ApplicationFilter{
		Status: models.ApplicationStatus(c.Query("status")),
		Offset: offset,
		Limit:  limit,
	}
	// Non-admins only see their own applications.
	if c.GetString("role") != string(models.RoleAdmin) {
		filter.CreatorID = c.GetString("userID")
	}

	total, apps, err := database.ListApplications(h.db, filter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, gin.H{"total_count": total, "list": apps}, "ok")
}

func (h *Handler) getApplication(c *gin.Context) {
	app, err := database.GetApplication(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	if !isAuthorized(c, app.CreatorID) {
		util.Error(c, http.StatusForbidden, "you can only view your own applications")
		return
	}
	util.Success(c, app, "ok")
}

// reviewApplication records the admin verdict. Approval promotes the
// application to a live challenge in the same transaction.
func (h *Handler) reviewApplication(c *gin.Context) {
	appID := c.Param("id")

	var req struct {
		Status        models.ApplicationStatus `json:"status" binding:"required,oneof=APPROVED REJECTED DELETED"`
		AdminFeedback string                   `json:"admin_feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Status == models.ApplicationApproved {
		challenge, err := database.PromoteApplication(h.db, appID, req.AdminFeedback)
		if err != nil {
			util.DomainError(c, err)
			return
		}
		zap.S().Infof("application %s approved, challenge %s created", appID, challenge.ID)

		h.notifyUser(challenge.CreatorID, pubsub.EventApplicationReviewed,
			fmt.Sprintf("Your challenge application '%s' was approved.", challenge.Title))
		util.Success(c, challenge, "Application approved")
		return
	}

	app, err := database.ReviewApplication(h.db, appID, req.Status, req.AdminFeedback)
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, app, "Application reviewed")
}
