package api

import (
	"net/http"

	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/database/models"
	"github.com/docthru/docthru/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) listChallenges(c *gin.Context) {
	offset, limit := pagination(c)

	total, challenges, err := database.ListChallenges(h.db, database.ChallengeFilter{
		Status:       models.ChallengeStatus(c.Query("status")),
		Category:     c.Query("category"),
		DocumentType: c.Query("type"),
		Keyword:      c.Query("keyword"),
		Offset:       offset,
		Limit:        limit,
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, gin.H{"total_count": total, "list": challenges}, "ok")
}

// listMyChallenges lists the challenges the caller has submitted a work to.
func (h *Handler) listMyChallenges(c *gin.Context) {
	offset, limit := pagination(c)

	total, challenges, err := database.ListChallenges(h.db, database.ChallengeFilter{
		Status:       models.ChallengeStatus(c.Query("status")),
		Category:     c.Query("category"),
		DocumentType: c.Query("type"),
		Keyword:      c.Query("keyword"),
		WorkerID:     c.GetString("userID"),
		Offset:       offset,
		Limit:        limit,
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, gin.H{"total_count": total, "list": challenges}, "ok")
}

func (h *Handler) getChallenge(c *gin.Context) {
	challenge, err := database.GetChallenge(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, challenge, "ok")
}

// updateChallenge edits challenge metadata. Status, capacity and lifecycle
// fields are owned by the admission controller and the sweeper and cannot be
// touched here.
func (h *Handler) updateChallenge(c *gin.Context) {
	challenge, err := database.GetChallenge(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}

	var req struct {
		Title        string `json:"title"`
		DocumentType string `json:"document_type"`
		Category     string `json:"category"`
		Description  string `json:"description"`
		OriginalLink string `json:"original_link"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != "" {
		challenge.Title = req.Title
	}
	if req.DocumentType != "" {
		challenge.DocumentType = req.DocumentType
	}
	if req.Category != "" {
		challenge.Category = req.Category
	}
	if req.Description != "" {
		challenge.Description = req.Description
	}
	if req.OriginalLink != "" {
		challenge.OriginalLink = req.OriginalLink
	}

	if err := database.UpdateChallenge(h.db, challenge); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, challenge, "Challenge updated")
}

func (h *Handler) deleteChallenge(c *gin.Context) {
	challengeID := c.Param("id")

	var req struct {
		AdminFeedback string `json:"admin_feedback"`
	}
	// Body is optional for deletes.
	_ = c.ShouldBindJSON(&req)

	if err := database.RemoveChallenge(h.db, challengeID, req.AdminFeedback); err != nil {
		util.DomainError(c, err)
		return
	}
	zap.S().Infof("challenge %s deleted by admin %s", challengeID, c.GetString("userID"))
	util.Success(c, nil, "Challenge deleted")
}
