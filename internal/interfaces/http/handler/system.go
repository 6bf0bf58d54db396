package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves the root banner and the health probes
type SystemHandler struct {
	BaseHandler
	now func() time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{now: time.Now}
}

// Root godoc
// @ID           getRoot
// @Summary      API banner
// @Tags         system
// @Produce      plain
// @Success      200 {string} string "API Working Fine"
// @Router       / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "API Working Fine")
}

// Health godoc
// @ID           getHealth
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// APIHealth godoc
// @ID           getAPIHealth
// @Summary      Liveness probe with server time
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /api/health [get]
func (h *SystemHandler) APIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "time": h.now().UTC().Format(time.RFC3339)})
}
