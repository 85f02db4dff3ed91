package api

import (
	"net/http"

	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/util"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listNotifications(c *gin.Context) {
	ns, err := database.GetNotificationsByUserID(h.db, c.GetString("userID"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, ns, "ok")
}

func (h *Handler) deleteNotification(c *gin.Context) {
	n, err := database.GetNotification(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	if !isAuthorized(c, n.UserID) {
		util.Error(c, http.StatusForbidden, "you can only delete your own notifications")
		return
	}

	if err := database.DeleteNotification(h.db, n.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Notification deleted")
}

func (h *Handler) deleteAllNotifications(c *gin.Context) {
	if err := database.DeleteNotificationsByUserID(h.db, c.GetString("userID")); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Notifications cleared")
}
