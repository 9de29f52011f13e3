package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"trainmice/internal/cache"
	apperrors "trainmice/internal/errors"
	"trainmice/internal/external"
	"trainmice/internal/service"
)

type Handlers struct {
	services     *service.Services
	valkeyClient *cache.ValkeyClient
}

func NewHandlers(services *service.Services, valkeyClient *cache.ValkeyClient) *Handlers {
	return &Handlers{
		services:     services,
		valkeyClient: valkeyClient,
	}
}

// respondError maps service errors onto HTTP statuses. Core API errors pass
// through with their original status so the dashboard sees what the upstream
// said; everything unexpected is a 500 with the fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrSessionExpired):
		c.JSON(http.StatusNotFound, gin.H{"error": "Confirmation session expired or not found"})
	case errors.Is(err, apperrors.ErrOverrideRequired):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflicts must be overridden before confirming"})
	case errors.Is(err, apperrors.ErrNoRecipients):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No conflicting booking carries a client to notify"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Core API rejected the configured token"})
	default:
		var apiErr *external.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
			return
		}
		slog.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
