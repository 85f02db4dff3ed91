package api

import (
	"errors"
	"net/http"

	"github.com/docthru/docthru/internal/auth"
	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/database/models"
	"github.com/docthru/docthru/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Nickname string `json:"nickname"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if _, err := database.GetUserByEmail(h.db, req.Email); err == nil {
		util.Error(c, http.StatusConflict, "email already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		util.Error(c, http.StatusInternalServerError, "database error")
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	newUser := models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Nickname:     req.Nickname,
		Role:         models.RoleNormal,
	}
	if newUser.Nickname == "" {
		newUser.Nickname = newUser.Email
	}

	if err := database.CreateUser(h.db, &newUser); err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	zap.S().Infof("new user registered: %s", newUser.Email)
	util.Success(c, gin.H{"id": newUser.ID, "email": newUser.Email}, "User registered successfully")
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	user, err := database.GetUserByEmail(h.db, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			util.Error(c, http.StatusUnauthorized, "invalid email or password")
		} else {
			util.Error(c, http.StatusInternalServerError, "database error")
		}
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	// Tier is recomputed opportunistically at login rather than by a job.
	role, err := database.ReevaluateUserRole(h.db, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to refresh user role")
		return
	}

	tokens, err := h.issueTokens(user.ID, role)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, tokens, "Login successful")
}

func (h *Handler) refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	claims, err := auth.ValidateJWT(req.RefreshToken, h.cfg.Auth.JWT.RefreshSecret)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	user, err := database.GetUserByID(h.db, claims.Subject)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	if user.RefreshToken != req.RefreshToken {
		util.Error(c, http.StatusUnauthorized, "refresh token has been rotated")
		return
	}

	tokens, err := h.issueTokens(user.ID, user.Role)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, tokens, "Token refreshed")
}

func (h *Handler) issueTokens(userID string, role models.Role) (gin.H, error) {
	jwtCfg := h.cfg.Auth.JWT

	accessToken, err := auth.GenerateJWT(userID, string(role), jwtCfg.Secret, jwtCfg.ExpireHours)
	if err != nil {
		return nil, err
	}
	refreshToken, err := auth.GenerateJWT(userID, string(role), jwtCfg.RefreshSecret, jwtCfg.RefreshExpireHours)
	if err != nil {
		return nil, err
	}

	// Rotate: only the latest issued refresh token stays valid.
	if err := h.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token", refreshToken).Error; err != nil {
		return nil, err
	}

	return gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"role":          role,
	}, nil
}
