package models

// InvoiceCreatedEvent is delivered when a document is created in the
// "invoices" collection. The invoice fields are passed through as-is; only
// userId is read by this service.
type InvoiceCreatedEvent struct {
	InvoiceID string                 `json:"invoiceId" binding:"required"`
	Invoice   map[string]interface{} `json:"invoice"`
}

// UserID returns the invoice's userId field, or "" if absent.
func (e *InvoiceCreatedEvent) UserID() string {
	if v, ok := e.Invoice["userId"].(string); ok {
		return v
	}
	return ""
}

// NotificationCreatedEvent is delivered when a document is created in the
// "notifications" collection.
type NotificationCreatedEvent struct {
	NotificationID string              `json:"notificationId" binding:"required"`
	Notification   NotificationRequest `json:"notification" binding:"required"`
}
