package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trainmice/internal/models"
)

// Registrations handlers

// ListRegistrations - GET /api/events/:id/registrations
// Получить регистрации на событие
func (h *Handlers) ListRegistrations(c *gin.Context) {
	registrations, err := h.services.Registrations.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list registrations")
		return
	}

	c.JSON(http.StatusOK, registrations)
}

// ApproveRegistration - POST /api/registrations/:id/approve
// Одобрить регистрацию
func (h *Handlers) ApproveRegistration(c *gin.Context) {
	var req models.ApproveRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registration, err := h.services.Registrations.Approve(c.Request.Context(), c.Param("id"), req.NumberOfParticipants)
	if err != nil {
		respondError(c, err, "Failed to approve registration")
		return
	}

	c.JSON(http.StatusOK, registration)
}

// CancelRegistration - POST /api/registrations/:id/cancel
// Отменить регистрацию
func (h *Handlers) CancelRegistration(c *gin.Context) {
	registration, err := h.services.Registrations.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to cancel registration")
		return
	}

	c.JSON(http.StatusOK, registration)
}
