package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
	"github.com/Abdalrahman1723/car-service-center-app/internal/services"
	"github.com/Abdalrahman1723/car-service-center-app/pkg/utils"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// SendTestNotification sends a notification to all managers directly,
// bypassing the database triggers. Delivery hints are omitted on this path.
func (h *NotificationHandler) SendTestNotification(c *gin.Context) {
	var req models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateNotificationRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.notificationService.NotifyManagers(c.Request.Context(), &req, false)
	if err != nil {
		if errors.Is(err, services.ErrNoRecipients) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no recipients found"})
			return
		}
		log.Printf("Error sending test notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.TestNotificationResponse{
		Success:      true,
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
	})
}
