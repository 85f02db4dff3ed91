package api

import (
	"net/http"

	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/database/models"
	"github.com/docthru/docthru/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) createComment(c *gin.Context) {
	workID := c.Param("id")

	if _, err := database.GetWork(h.db, workID); err != nil {
		util.DomainError(c, err)
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	comment := models.Comment{
		ID:       uuid.NewString(),
		WorkID:   workID,
		AuthorID: c.GetString("userID"),
		Content:  req.Content,
	}
	if err := database.CreateComment(h.db, &comment); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, comment, "Comment created")
}

func (h *Handler) listWorkComments(c *gin.Context) {
	workID := c.Param("id")

	if _, err := database.GetWork(h.db, workID); err != nil {
		util.DomainError(c, err)
		return
	}

	comments, err := database.GetCommentsByWorkID(h.db, workID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, comments, "ok")
}

func (h *Handler) updateComment(c *gin.Context) {
	comment, err := database.GetComment(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	if !isAuthorized(c, comment.AuthorID) {
		util.Error(c, http.StatusForbidden, "you can only edit your own comments")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if err := database.UpdateCommentContent(h.db, comment.ID, req.Content); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	comment.Content = req.Content
	util.Success(c, comment, "Comment updated")
}

func (h *Handler) deleteComment(c *gin.Context) {
	comment, err := database.GetComment(h.db, c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	if !isAuthorized(c, comment.AuthorID) {
		util.Error(c, http.StatusForbidden, "you can only delete your own comments")
		return
	}

	if err := database.DeleteComment(h.db, comment.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Comment deleted")
}
