package api

import (
	"fmt"

	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/pubsub"
	"github.com/docthru/docthru/internal/util"
	"github.com/gin-gonic/gin"
)

func (h *Handler) likeWork(c *gin.Context) {
	workID := c.Param("id")
	userID := c.GetString("userID")

	if err := database.AddLike(h.db, workID, userID); err != nil {
		util.DomainError(c, err)
		return
	}

	if work, err := database.GetWork(h.db, workID); err == nil && work.WorkerID != userID {
		h.notifyUser(work.WorkerID, pubsub.EventLikeAdded,
			fmt.Sprintf("Your work received a new like (%d total).", work.LikeCount))
	}

	util.Success(c, nil, "Liked")
}

func (h *Handler) unlikeWork(c *gin.Context) {
	workID := c.Param("id")
	userID := c.GetString("userID")

	if err := database.RemoveLike(h.db, workID, userID); err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, nil, "Like removed")
}
