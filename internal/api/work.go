package api

import (
	"fmt"
	"net/http"

	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/pubsub"
	"github.com/docthru/docthru/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) submitWork(c *gin.Context) {
	challengeID := c.Param("id")
	userID := c.GetString("userID")

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	work, err := database.SubmitWork(h.db, challengeID, userID, req.Content)
	if err != nil {
		util.DomainError(c, err)
		return
	}
	zap.S().Infof("work %s submitted to challenge %s by user %s", work.ID, challengeID, userID)

	if challenge, err := database.GetChallenge(h.db, challengeID); err == nil && challenge.CreatorID != userID {
		h.notifyUser(challenge.CreatorID, pubsub.EventWorkSubmitted,
			fmt.Sprintf("A new work was submitted to your challenge '%s'.", challenge.Title))
	}

	util.Success(c, work, "Work submitted")
}

// listChallengeWorks returns one page of the challenge standings. Tied works
// share a rank and the next distinct like count resumes at its global
// position, whichever page is requested.
func (h *Handler) listChallengeWorks(c *gin.Context) {
	challengeID := c.Param("id")

	if _, err := database.GetChallenge(h.db, challengeID); err != nil {
		util.DomainError(c, err)
		return
	}

	offset, limit := pagination(c)
	total, ranked, err := database.ChallengeRanking(h.db, challengeID, offset, limit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, gin.H{"total_count": total, "list": ranked}, "ok")
}

func (h *Handler) getWork(c *gin.Context) {
	work, err := database.GetWork(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, work, "ok")
}

func (h *Handler) updateWork(c *gin.Context) {
	work, err := database.GetWork(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	if !isAuthorized(c, work.WorkerID) {
		util.Error(c, http.StatusForbidden, "you can only edit your own works")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if err := database.UpdateWorkContent(h.db, work.ID, req.Content); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	work.Content = req.Content
	util.Success(c, work, "Work updated")
}

func (h *Handler) deleteWork(c *gin.Context) {
	work, err := database.GetWork(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	if !isAuthorized(c, work.WorkerID) {
		util.Error(c, http.StatusForbidden, "you can only delete your own works")
		return
	}

	if err := database.DeleteWork(h.db, work.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Work deleted")
}
