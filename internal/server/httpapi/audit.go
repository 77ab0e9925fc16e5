package httpapi

import (
	"net/http"
	"strconv"

	"github.com/admintieri/tractoradmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, ""))
	if err != nil {
		return fallback
	}
	return v
}

// ListAudit serves the notification feed: one page of records plus the total
// count for the badge.
func (h *Handler) ListAudit(c *gin.Context) {
	page := queryInt(c, "page", 1)
	take := queryInt(c, "take", 50)

	items, total, err := h.audit.List(c.Request.Context(), page, take)
	if err != nil {
		h.logger.Error(c.Request.Context(), "audit list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if items == nil {
		items = []*models.AuditRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}
