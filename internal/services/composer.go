package services

import (
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
)

// notificationChannelID is the Android channel the client app registers for
// service notifications.
const notificationChannelID = "car_service_notifications"

// Compose builds the multicast message for a notification request. The token
// list is attached later by the Dispatcher.
func Compose(req *models.NotificationRequest) *messaging.MulticastMessage {
	return &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
		Data: map[string]string{
			"eventType": req.EventType,
			"eventId":   req.EventID,
			// Colon-joined with no escaping: ambiguous if eventType or
			// eventId contains ":". Known limitation.
			"payload": fmt.Sprintf("%s:%s", req.EventType, req.EventID),
		},
	}
}

// ComposeWithDefaults builds the same message with the constant Android and
// APNS delivery hints used on the notification trigger path.
func ComposeWithDefaults(req *models.NotificationRequest) *messaging.MulticastMessage {
	msg := Compose(req)

	msg.Android = &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			ChannelID:             notificationChannelID,
			Priority:              messaging.PriorityHigh,
			DefaultSound:          true,
			DefaultVibrateTimings: true,
		},
	}

	badge := 1
	msg.APNS = &messaging.APNSConfig{
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Sound: "default",
				Badge: &badge,
			},
		},
	}

	return msg
}
