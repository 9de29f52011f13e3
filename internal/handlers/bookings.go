package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trainmice/internal/models"
	"trainmice/internal/schedule"
)

// Bookings handlers

// ListBookings - GET /api/bookings
// Получить список заявок на бронирование
func (h *Handlers) ListBookings(c *gin.Context) {
	status := c.Query("status")
	requestType := c.Query("type")

	bookings, err := h.services.Bookings.List(c.Request.Context(), status, requestType)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}

	// groupBy=trainer returns the dashboard's nested trainer/date shape
	if c.Query("groupBy") == "trainer" {
		c.JSON(http.StatusOK, schedule.GroupBookingsByTrainer(bookings))
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// StartConfirmation - POST /api/bookings/:id/confirmation
// Запустить процесс подтверждения: проверка конфликтов и открытие сессии
func (h *Handlers) StartConfirmation(c *gin.Context) {
	response, err := h.services.Bookings.StartConfirmation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to start confirmation")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// NotifyConflicts - POST /api/bookings/:id/notify
// Отправить письмо клиентам конфликтующих бронирований
func (h *Handlers) NotifyConflicts(c *gin.Context) {
	var req models.NotifyConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.NotifyConflicts(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to notify conflicting clients")
		return
	}

	c.JSON(http.StatusOK, response)
}

// OverrideConflicts - POST /api/bookings/:id/override
// Подтвердить конфликты и разблокировать форму
func (h *Handlers) OverrideConflicts(c *gin.Context) {
	var req models.OverrideConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.OverrideConflicts(c.Request.Context(), c.Param("id"), req.SessionID)
	if err != nil {
		respondError(c, err, "Failed to override conflicts")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ConfirmBooking - POST /api/bookings/:id/confirm
// Подтвердить бронирование и создать событие
func (h *Handlers) ConfirmBooking(c *gin.Context) {
	var req models.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.Confirm(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to confirm booking")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelBooking - POST /api/bookings/:id/cancel
// Отменить заявку на бронирование
func (h *Handlers) CancelBooking(c *gin.Context) {
	booking, err := h.services.Bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}
