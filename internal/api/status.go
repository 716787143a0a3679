package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"opsdash/internal/model"
	"opsdash/internal/store"
)

// GetStatus 服务状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	types := make([]model.ReportType, 0, len(h.registry.Procurement))
	for _, p := range h.registry.Procurement {
		types = append(types, p.Type)
	}
	c.JSON(http.StatusOK, gin.H{
		"version":          Version,
		"uptime":           time.Since(h.startedAt).Round(time.Second).String(),
		"activeReports":    h.sessions.Count(),
		"procurementTypes": types,
	})
}

// ListUploads 最近的上传审计记录
// GET /api/uploads?pipeline=&limit=
func (h *Handler) ListUploads(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusOK, gin.H{"uploads": []model.UploadLogEntry{}})
		return
	}

	q := store.UploadQuery{Pipeline: model.Pipeline(c.Query("pipeline"))}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil || limit == 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		q.Limit = limit
	}

	entries, err := h.uploads.RecentUploads(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	if entries == nil {
		entries = []model.UploadLogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"uploads": entries})
}
