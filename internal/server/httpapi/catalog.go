package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/admintieri/tractoradmin/internal/common"
	"github.com/admintieri/tractoradmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

type tractorRequest struct {
	Name        string  `json:"name" binding:"required"`
	Photo       string  `json:"photo"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func tractorID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// ListTractors serves one catalog, optionally filtered by the ?q= search box.
func (h *Handler) ListTractors(condition models.Condition) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.catalog.List(c.Request.Context(), condition, c.Query("q"))
		if err != nil {
			h.logger.Error(c.Request.Context(), "catalog list failed", "condition", condition, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if items == nil {
			items = []*models.Tractor{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func (h *Handler) GetTractor(condition models.Condition) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := tractorID(c)
		if !ok {
			return
		}

		item, err := h.catalog.Get(c.Request.Context(), condition, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			h.logger.Error(c.Request.Context(), "catalog get failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func (h *Handler) CreateTractor(condition models.Condition) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tractorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item, err := h.catalog.Create(c.Request.Context(), &models.Tractor{
			Condition:   condition,
			Name:        req.Name,
			Photo:       req.Photo,
			Description: req.Description,
			Price:       req.Price,
			Quantity:    req.Quantity,
		})
		if err != nil {
			h.logger.Error(c.Request.Context(), "catalog create failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		h.audit.Record("tractor_created", "tractors/"+string(condition), currentIdentity(c),
			gin.H{"id": item.ID, "name": item.Name}, c.ClientIP(), c.Request.UserAgent())

		c.JSON(http.StatusCreated, item)
	}
}

func (h *Handler) UpdateTractor(condition models.Condition) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := tractorID(c)
		if !ok {
			return
		}

		var patch models.TractorPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item, err := h.catalog.Update(c.Request.Context(), condition, id, &patch)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			h.logger.Error(c.Request.Context(), "catalog update failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		h.audit.Record("tractor_updated", "tractors/"+string(condition), currentIdentity(c),
			gin.H{"id": item.ID}, c.ClientIP(), c.Request.UserAgent())

		c.JSON(http.StatusOK, item)
	}
}

func (h *Handler) DeleteTractor(condition models.Condition) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := tractorID(c)
		if !ok {
			return
		}

		if err := h.catalog.Delete(c.Request.Context(), condition, id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			h.logger.Error(c.Request.Context(), "catalog delete failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		h.audit.Record("tractor_deleted", "tractors/"+string(condition), currentIdentity(c),
			gin.H{"id": id}, c.ClientIP(), c.Request.UserAgent())

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// PresignUpload hands out a presigned PUT URL for a listing photo.
func (h *Handler) PresignUpload(c *gin.Context) {
	url, key, err := h.catalog.PresignUpload(c.Request.Context())
	if err != nil {
		h.logger.Error(c.Request.Context(), "presign failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "key": key})
}
