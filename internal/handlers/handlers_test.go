package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/Abdalrahman1723/car-service-center-app/internal/config"
	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
	"github.com/Abdalrahman1723/car-service-center-app/internal/services"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDirectory struct {
	userTokens map[string][]string
	roleTokens map[string][]string
	err        error

	queries int
}

func (f *fakeDirectory) TokensForUser(_ context.Context, userID string) ([]string, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	return f.userTokens[userID], nil
}

func (f *fakeDirectory) TokensForRole(_ context.Context, role string) ([]string, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	return f.roleTokens[role], nil
}

type fakeWriter struct {
	docID string
	err   error
}

func (f *fakeWriter) CreateFromTimelineEvent(_ context.Context, _ *models.TimelineEvent) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.docID, nil
}

type fakeSender struct {
	calls int
	err   error
}

func (f *fakeSender) SendEachForMulticast(_ context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	resp := &messaging.BatchResponse{SuccessCount: len(msg.Tokens)}
	for range msg.Tokens {
		resp.Responses = append(resp.Responses, &messaging.SendResponse{Success: true})
	}
	return resp, nil
}

// setupRouter builds the API routes over fake collaborators, mirroring the
// production wiring in cmd/server.
func setupRouter(t *testing.T, directory *fakeDirectory, writer *fakeWriter, sender *fakeSender) *gin.Engine {
	t.Helper()

	cfg := &config.Config{ManagerRole: "manager", InvoiceNotifyUserID: "fallback-user"}
	service := services.NewNotificationService(directory, writer, services.NewDispatcher(sender), cfg)
	eventHandler := NewEventHandler(service)
	notificationHandler := NewNotificationHandler(service)

	router := gin.New()
	api := router.Group("/api")
	{
		events := api.Group("/events")
		{
			events.POST("/invoices", eventHandler.InvoiceCreated)
			events.POST("/timeline", eventHandler.TimelineEventCreated)
			events.POST("/notifications", eventHandler.NotificationCreated)
		}
		api.POST("/notifications/test", notificationHandler.SendTestNotification)
	}
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSendTestNotificationMissingFields(t *testing.T) {
	directory := &fakeDirectory{}
	sender := &fakeSender{}
	router := setupRouter(t, directory, &fakeWriter{}, sender)

	w := postJSON(t, router, "/api/notifications/test", gin.H{"title": "T"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if directory.queries != 0 {
		t.Errorf("directory queries = %d, want 0", directory.queries)
	}
	if sender.calls != 0 {
		t.Errorf("send calls = %d, want 0", sender.calls)
	}
}

func TestSendTestNotificationNoRecipients(t *testing.T) {
	directory := &fakeDirectory{roleTokens: map[string][]string{}}
	sender := &fakeSender{}
	router := setupRouter(t, directory, &fakeWriter{}, sender)

	w := postJSON(t, router, "/api/notifications/test", gin.H{
		"title": "T", "body": "B", "eventType": "x", "eventId": "1",
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if sender.calls != 0 {
		t.Errorf("send calls = %d, want 0", sender.calls)
	}
}

func TestSendTestNotificationSuccess(t *testing.T) {
	directory := &fakeDirectory{roleTokens: map[string][]string{"manager": {"tok-1", "tok-2"}}}
	router := setupRouter(t, directory, &fakeWriter{}, &fakeSender{})

	w := postJSON(t, router, "/api/notifications/test", gin.H{
		"title": "T", "body": "B", "eventType": "x", "eventId": "1",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp models.TestNotificationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success should be true")
	}
	if resp.SuccessCount != 2 || resp.FailureCount != 0 {
		t.Errorf("counts = %d/%d, want 2/0", resp.SuccessCount, resp.FailureCount)
	}
}

func TestSendTestNotificationSendFailure(t *testing.T) {
	directory := &fakeDirectory{roleTokens: map[string][]string{"manager": {"tok-1"}}}
	sender := &fakeSender{err: errors.New("fcm unavailable")}
	router := setupRouter(t, directory, &fakeWriter{}, sender)

	w := postJSON(t, router, "/api/notifications/test", gin.H{
		"title": "T", "body": "B", "eventType": "x", "eventId": "1",
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestInvoiceCreatedSendFailureIsSwallowed(t *testing.T) {
	directory := &fakeDirectory{userTokens: map[string][]string{"user-7": {"tok-1"}}}
	sender := &fakeSender{err: errors.New("fcm unavailable")}
	router := setupRouter(t, directory, &fakeWriter{}, sender)

	w := postJSON(t, router, "/api/events/invoices", gin.H{
		"invoiceId": "INV-1",
		"invoice":   gin.H{"userId": "user-7"},
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (invoice path swallows send failures)", w.Code, http.StatusOK)
	}
}

func TestInvoiceCreatedNoTokensSkips(t *testing.T) {
	directory := &fakeDirectory{userTokens: map[string][]string{}}
	sender := &fakeSender{}
	router := setupRouter(t, directory, &fakeWriter{}, sender)

	w := postJSON(t, router, "/api/events/invoices", gin.H{
		"invoiceId": "INV-1",
		"invoice":   gin.H{"userId": "user-7"},
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if sender.calls != 0 {
		t.Errorf("send calls = %d, want 0", sender.calls)
	}
}

func TestNotificationCreatedSendFailureAnswers500(t *testing.T) {
	directory := &fakeDirectory{roleTokens: map[string][]string{"manager": {"tok-1"}}}
	sender := &fakeSender{err: errors.New("fcm unavailable")}
	router := setupRouter(t, directory, &fakeWriter{}, sender)

	w := postJSON(t, router, "/api/events/notifications", gin.H{
		"notificationId": "doc-1",
		"notification": gin.H{
			"title": "T", "body": "B", "eventType": "x", "eventId": "1",
		},
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d (notification path propagates send failures)", w.Code, http.StatusInternalServerError)
	}
}

func TestNotificationCreatedNoManagersSkips(t *testing.T) {
	directory := &fakeDirectory{roleTokens: map[string][]string{}}
	sender := &fakeSender{}
	router := setupRouter(t, directory, &fakeWriter{}, sender)

	w := postJSON(t, router, "/api/events/notifications", gin.H{
		"notificationId": "doc-1",
		"notification": gin.H{
			"title": "T", "body": "B", "eventType": "x", "eventId": "1",
		},
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if sender.calls != 0 {
		t.Errorf("send calls = %d, want 0", sender.calls)
	}
}

func TestTimelineEventCreated(t *testing.T) {
	writer := &fakeWriter{docID: "doc-9"}
	router := setupRouter(t, &fakeDirectory{}, writer, &fakeSender{})

	w := postJSON(t, router, "/api/events/timeline", gin.H{
		"id": "E1", "title": "T", "description": "D", "type": "maintenance",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["notificationId"] != "doc-9" {
		t.Errorf("notificationId = %q, want %q", resp["notificationId"], "doc-9")
	}
}

func TestTimelineEventCreatedWriteFailureAnswers500(t *testing.T) {
	writer := &fakeWriter{err: errors.New("firestore unavailable")}
	router := setupRouter(t, &fakeDirectory{}, writer, &fakeSender{})

	w := postJSON(t, router, "/api/events/timeline", gin.H{
		"id": "E1", "title": "T", "description": "D", "type": "maintenance",
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
