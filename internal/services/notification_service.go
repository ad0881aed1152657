package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Abdalrahman1723/car-service-center-app/internal/config"
	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
)

// ErrNoRecipients reports that token resolution matched no usable tokens.
// It is a nothing-to-do condition, not a failure: callers skip dispatch.
var ErrNoRecipients = errors.New("no recipients found")

// Directory is the recipient directory: it resolves delivery tokens either
// for one named user or for all users holding a role.
type Directory interface {
	TokensForUser(ctx context.Context, userID string) ([]string, error)
	TokensForRole(ctx context.Context, role string) ([]string, error)
}

// NotificationWriter persists notification documents.
type NotificationWriter interface {
	CreateFromTimelineEvent(ctx context.Context, event *models.TimelineEvent) (string, error)
}

// NotificationService wires the trigger paths together: token resolution,
// message composition and dispatch.
type NotificationService struct {
	directory     Directory
	notifications NotificationWriter
	dispatcher    *Dispatcher
	cfg           *config.Config
}

func NewNotificationService(directory Directory, notifications NotificationWriter, dispatcher *Dispatcher, cfg *config.Config) *NotificationService {
	return &NotificationService{
		directory:     directory,
		notifications: notifications,
		dispatcher:    dispatcher,
		cfg:           cfg,
	}
}

// NotifyInvoiceCreated sends the "new invoice" notification to the invoice's
// user, falling back to the configured recipient when the invoice carries no
// userId.
func (s *NotificationService) NotifyInvoiceCreated(ctx context.Context, event *models.InvoiceCreatedEvent) (*models.DispatchResult, error) {
	userID := event.UserID()
	if userID == "" {
		userID = s.cfg.InvoiceNotifyUserID
	}
	if userID == "" {
		log.Printf("Invoice %s has no userId and no fallback recipient is configured. No notification sent.", event.InvoiceID)
		return nil, ErrNoRecipients
	}

	tokens, err := s.directory.TokensForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tokens for user %s: %w", userID, err)
	}
	if len(tokens) == 0 {
		log.Printf("User %s has no device tokens. No notification sent.", userID)
		return nil, ErrNoRecipients
	}
	log.Printf("Found %d tokens for user %s.", len(tokens), userID)

	req := &models.NotificationRequest{
		Title:     "New Invoice Created",
		Body:      fmt.Sprintf("A new invoice (%s) has been added to the database.", event.InvoiceID),
		EventType: "invoice_created",
		EventID:   event.InvoiceID,
	}
	return s.dispatcher.Dispatch(ctx, Compose(req), tokens)
}

// HandleTimelineEvent synthesizes the notification document for a timeline
// event. The resulting document creation is what fires the notification
// trigger path.
func (s *NotificationService) HandleTimelineEvent(ctx context.Context, event *models.TimelineEvent) (string, error) {
	return s.notifications.CreateFromTimelineEvent(ctx, event)
}

// NotifyManagers resolves tokens for all manager-role users and dispatches
// the composed message to them. withDeliveryHints selects the Android/APNS
// defaults used on the notification trigger path; the test endpoint omits
// them.
func (s *NotificationService) NotifyManagers(ctx context.Context, req *models.NotificationRequest, withDeliveryHints bool) (*models.DispatchResult, error) {
	tokens, err := s.directory.TokensForRole(ctx, s.cfg.ManagerRole)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manager tokens: %w", err)
	}
	if len(tokens) == 0 {
		log.Println("No FCM tokens found for managers")
		return nil, ErrNoRecipients
	}

	msg := Compose(req)
	if withDeliveryHints {
		msg = ComposeWithDefaults(req)
	}
	return s.dispatcher.Dispatch(ctx, msg, tokens)
}
