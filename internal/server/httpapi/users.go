package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers serves the paged administrator directory. The response carries a
// pagination block so the console can render page controls.
func (h *Handler) ListUsers(c *gin.Context) {
	page := queryInt(c, "page", 1)
	take := queryInt(c, "take", 25)
	if take < 1 {
		take = 25
	}

	items, total, err := h.directory.List(c.Request.Context(), page, take)
	if err != nil {
		h.logger.Error(c.Request.Context(), "user list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	pages := (total + int64(take) - 1) / int64(take)
	if pages < 1 {
		pages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"pagination": gin.H{
			"total": total,
			"pages": pages,
		},
	})
}
