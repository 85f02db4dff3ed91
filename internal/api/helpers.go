package api

import (
	"strconv"

	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/database/models"
	"github.com/docthru/docthru/internal/pubsub"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pagination reads page/page_size query params into an offset/limit pair.
func pagination(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return (page - 1) * size, size
}

// notifyUser persists a notification row and publishes the event for any
// in-process subscriber. Delivery beyond that is someone else's job.
func (h *Handler) notifyUser(userID, eventType, message string) {
	n := &models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Message: message,
	}
	if err := database.CreateNotification(h.db, n); err != nil {
		zap.S().Errorf("failed to store notification for user %s: %v", userID, err)
		return
	}
	pubsub.GetBroker().Publish(userID, pubsub.FormatEvent(eventType, message))
}
