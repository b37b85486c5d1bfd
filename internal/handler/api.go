package handler

import (
	"github.com/pressfolio/internal/platform"
	"github.com/pressfolio/internal/service"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	posts    service.PostStore
	importer *service.ImportService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, adapters []platform.Adapter, logger zerolog.Logger) *API {
	posts := service.NewPostService(gdb)
	return &API{
		db:       gdb,
		posts:    posts,
		importer: service.NewImportService(posts, adapters, logger),
	}
}
