package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trainmice/internal/models"
)

// Calendar handlers

// GetMonthView - GET /api/trainers/:id/calendar
// Календарь тренера за месяц
func (h *Handlers) GetMonthView(c *gin.Context) {
	trainerID := c.Param("id")

	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	if year < 1 || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month query parameters are required"})
		return
	}

	// Cache-aside with raw JSON; a cold or broken cache falls through to the
	// core API.
	if h.valkeyClient != nil {
		rawJSON, err := h.valkeyClient.GetMonthViewRaw(c.Request.Context(), trainerID, year, month)
		if err == nil {
			slog.Info("Cache hit for month view", "trainer_id", trainerID, "year", year, "month", month)
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	view, err := h.services.Calendar.MonthView(c.Request.Context(), trainerID, year, time.Month(month))
	if err != nil {
		respondError(c, err, "Failed to build month view")
		return
	}

	if h.valkeyClient != nil {
		if err := h.valkeyClient.SetMonthView(c.Request.Context(), trainerID, year, month, view); err != nil {
			slog.Error("Failed to cache month view", "error", err, "trainer_id", trainerID)
		}
	}

	c.JSON(http.StatusOK, view)
}

// CreateAvailability - POST /api/trainers/:id/availability
// Массовое создание доступности за диапазон дат
func (h *Handlers) CreateAvailability(c *gin.Context) {
	var req models.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Calendar.CreateAvailability(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to create availability")
		return
	}

	c.JSON(http.StatusCreated, response)
}
