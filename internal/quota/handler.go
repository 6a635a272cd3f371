package quota

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// Status reports the caller's remaining analyses for today.
func (h *Handler) Status(c *gin.Context) {
	userID := c.GetString("userID")

	status, err := h.manager.Snapshot(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quota"})
		return
	}
	c.JSON(http.StatusOK, status)
}
