package api

import (
	"github.com/docthru/docthru/internal/config"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the API handlers.
type Handler struct {
	cfg *config.Config
	db  *gorm.DB
}

// NewHandler creates a new handler with its dependencies.
func NewHandler(cfg *config.Config, db *gorm.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}
