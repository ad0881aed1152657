package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
	"github.com/google/uuid"
)

// NotificationRepository writes notification documents to Firestore.
type NotificationRepository struct {
	client *firestore.Client
}

func NewNotificationRepository(client *firestore.Client) *NotificationRepository {
	return &NotificationRepository{client: client}
}

// CreateFromTimelineEvent writes the notification document synthesized from a
// timeline event and returns its document ID. The write is a single document
// create: it either fully succeeds or fails without side effects.
func (r *NotificationRepository) CreateFromTimelineEvent(ctx context.Context, event *models.TimelineEvent) (string, error) {
	notification := models.NotificationFromTimelineEvent(event)

	docID := uuid.NewString()
	_, err := r.client.Collection("notifications").Doc(docID).Set(ctx, notification)
	if err != nil {
		return "", err
	}
	return docID, nil
}
