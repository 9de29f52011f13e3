package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Events handlers

// ListEvents - GET /api/events
// Получить список событий
func (h *Handlers) ListEvents(c *gin.Context) {
	events, err := h.services.Events.List(c.Request.Context(), c.Query("trainerId"), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// CompleteExpiredEvents - POST /api/events/complete-expired
// Завершить прошедшие события
func (h *Handlers) CompleteExpiredEvents(c *gin.Context) {
	count, err := h.services.Events.CompleteExpired(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to complete expired events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"completedCount": count})
}
