package api

import (
	"github.com/docthru/docthru/internal/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter creates and configures the Gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db)

	v1 := r.Group("/api/v1")
	{
		// Auth
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
			authGroup.POST("/refresh", h.refresh)
		}

		// Publicly accessible info
		v1.GET("/challenges", h.listChallenges)
		v1.GET("/challenges/:id", h.getChallenge)
		v1.GET("/challenges/:id/works", h.listChallengeWorks)
		v1.GET("/works/:id", h.getWork)
		v1.GET("/works/:id/comments", h.listWorkComments)

		// Authenticated routes
		authed := v1.Group("/")
		authed.Use(AuthMiddleware(cfg.Auth.JWT.Secret))
		{
			// Challenge applications
			authed.POST("/applications", h.createApplication)
			authed.GET("/applications", h.listApplications)
			authed.GET("/applications/:id", h.getApplication)

			// Challenges the caller participates in
			authed.GET("/me/challenges", h.listMyChallenges)

			// Work submission and maintenance
			authed.POST("/challenges/:id/works", h.submitWork)
			authed.PATCH("/works/:id", h.updateWork)
			authed.DELETE("/works/:id", h.deleteWork)

			// Likes
			authed.POST("/works/:id/likes", h.likeWork)
			authed.DELETE("/works/:id/likes", h.unlikeWork)

			// Comments
			authed.POST("/works/:id/comments", h.createComment)
			authed.PATCH("/comments/:id", h.updateComment)
			authed.DELETE("/comments/:id", h.deleteComment)

			// Notifications
			authed.GET("/notifications", h.listNotifications)
			authed.DELETE("/notifications", h.deleteAllNotifications)
			authed.DELETE("/notifications/:id", h.deleteNotification)

			// Admin review surface
			admin := authed.Group("/")
			admin.Use(AdminOnly())
			{
				admin.PATCH("/applications/:id", h.reviewApplication)
				admin.PATCH("/challenges/:id", h.updateChallenge)
				admin.DELETE("/challenges/:id", h.deleteChallenge)
			}
		}
	}

	return r
}
