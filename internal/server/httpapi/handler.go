// Package httpapi exposes the admin console's REST surface: the cookie-based
// auth endpoints, the two inventory catalogs, the audit feed, and the user
// directory.
package httpapi

import (
	"github.com/admintieri/tractoradmin/internal/logging"
	"github.com/admintieri/tractoradmin/internal/server/config"
	"github.com/admintieri/tractoradmin/internal/server/services"
)

type Handler struct {
	cfg       *config.Config
	logger    logging.Logger
	sessions  *services.SessionService
	catalog   *services.CatalogService
	audit     *services.AuditService
	directory *services.DirectoryService
}

func NewHandler(cfg *config.Config, logger logging.Logger,
	sessions *services.SessionService, catalog *services.CatalogService,
	audit *services.AuditService, directory *services.DirectoryService) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		sessions:  sessions,
		catalog:   catalog,
		audit:     audit,
		directory: directory,
	}
}
