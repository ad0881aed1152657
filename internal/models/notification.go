package models

import "time"

// NotificationRequest is the logical intent to notify. It is the shape of a
// document in the "notifications" collection and of the test endpoint body.
type NotificationRequest struct {
	Title     string            `firestore:"title" json:"title"`
	Body      string            `firestore:"body" json:"body"`
	EventType string            `firestore:"eventType" json:"eventType"`
	EventID   string            `firestore:"eventId" json:"eventId"`
	Metadata  map[string]string `firestore:"metadata" json:"metadata,omitempty"`
	Read      bool              `firestore:"read" json:"read"`
}

// Notification is the document written to the "notifications" collection when
// a timeline event is handled. Timestamp is assigned by Firestore on write.
type Notification struct {
	Title     string            `firestore:"title" json:"title"`
	Body      string            `firestore:"body" json:"body"`
	EventType string            `firestore:"eventType" json:"eventType"`
	EventID   string            `firestore:"eventId" json:"eventId"`
	Timestamp time.Time         `firestore:"timestamp,serverTimestamp" json:"timestamp"`
	Metadata  map[string]string `firestore:"metadata" json:"metadata"`
	Read      bool              `firestore:"read" json:"read"`
}

// NotificationFromTimelineEvent maps a timeline event to the notification
// document it produces: description becomes the body, type the eventType and
// id the eventId. The timestamp is left zero for Firestore to assign.
func NotificationFromTimelineEvent(event *TimelineEvent) Notification {
	metadata := event.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return Notification{
		Title:     event.Title,
		Body:      event.Description,
		EventType: event.Type,
		EventID:   event.ID,
		Metadata:  metadata,
		Read:      false,
	}
}

// TimelineEvent represents a document created in the "timeline_events"
// collection. One timeline event produces exactly one notification document.
type TimelineEvent struct {
	ID          string            `firestore:"id" json:"id"`
	Title       string            `firestore:"title" json:"title"`
	Description string            `firestore:"description" json:"description"`
	Type        string            `firestore:"type" json:"type"`
	Metadata    map[string]string `firestore:"metadata" json:"metadata,omitempty"`
}

// TokenResult pairs one device token with its delivery outcome.
type TokenResult struct {
	Token   string `json:"token"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DispatchResult aggregates the outcome of one multicast send.
// SuccessCount+FailureCount always equals the number of tokens sent to.
type DispatchResult struct {
	SuccessCount int           `json:"successCount"`
	FailureCount int           `json:"failureCount"`
	Responses    []TokenResult `json:"responses,omitempty"`
}

// TestNotificationResponse is the test endpoint's success body.
type TestNotificationResponse struct {
	Success      bool `json:"success"`
	SuccessCount int  `json:"successCount"`
	FailureCount int  `json:"failureCount"`
}
