package utils

import (
	"errors"

	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
)

// ValidateNotificationRequest checks the fields required to dispatch a
// notification.
func ValidateNotificationRequest(req *models.NotificationRequest) error {
	if req.Title == "" {
		return errors.New("title is required")
	}
	if req.Body == "" {
		return errors.New("body is required")
	}
	if req.EventType == "" {
		return errors.New("eventType is required")
	}
	if req.EventID == "" {
		return errors.New("eventId is required")
	}
	return nil
}
