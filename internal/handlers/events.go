package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
	"github.com/Abdalrahman1723/car-service-center-app/internal/services"
	"github.com/gin-gonic/gin"
)

// EventHandler receives document-creation events from the delivery platform.
type EventHandler struct {
	notificationService *services.NotificationService
}

func NewEventHandler(notificationService *services.NotificationService) *EventHandler {
	return &EventHandler{notificationService: notificationService}
}

// InvoiceCreated handles creation of a document in the "invoices" collection.
// Resolution and send failures are swallowed after logging: the endpoint
// answers 200 regardless, so the delivery platform never re-fires this event.
func (h *EventHandler) InvoiceCreated(c *gin.Context) {
	var event models.InvoiceCreatedEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("New invoice created with ID: %s", event.InvoiceID)

	result, err := h.notificationService.NotifyInvoiceCreated(c.Request.Context(), &event)
	if err != nil {
		if errors.Is(err, services.ErrNoRecipients) {
			c.JSON(http.StatusOK, gin.H{"status": "skipped"})
			return
		}
		log.Printf("Error fetching tokens or sending message: %v", err)
		c.JSON(http.StatusOK, gin.H{"status": "failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "sent",
		"successCount": result.SuccessCount,
		"failureCount": result.FailureCount,
	})
}

// TimelineEventCreated handles creation of a document in the
// "timeline_events" collection by writing the corresponding notification
// document. A write failure answers 500 so the platform retries the event.
func (h *EventHandler) TimelineEventCreated(c *gin.Context) {
	var event models.TimelineEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	docID, err := h.notificationService.HandleTimelineEvent(c.Request.Context(), &event)
	if err != nil {
		log.Printf("Error handling timeline event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notificationId": docID})
}

// NotificationCreated handles creation of a document in the "notifications"
// collection: it notifies all manager users. Resolution and send failures
// answer 500 so the platform marks the invocation as failed.
func (h *EventHandler) NotificationCreated(c *gin.Context) {
	var event models.NotificationCreatedEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.notificationService.NotifyManagers(c.Request.Context(), &event.Notification, true)
	if err != nil {
		if errors.Is(err, services.ErrNoRecipients) {
			c.JSON(http.StatusOK, gin.H{"status": "skipped"})
			return
		}
		log.Printf("Error sending notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "sent",
		"successCount": result.SuccessCount,
		"failureCount": result.FailureCount,
	})
}
