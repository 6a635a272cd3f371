package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns the caller's analyses, newest first.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")

	records, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analyses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": records})
}

// Get returns one analysis owned by the caller.
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	record, err := h.service.Get(c.Request.Context(), userID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have access to this analysis"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analysis"})
	default:
		c.JSON(http.StatusOK, record)
	}
}

// Delete removes one analysis owned by the caller.
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	err := h.service.Delete(c.Request.Context(), userID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have access to this analysis"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete analysis"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "analysis deleted"})
	}
}
