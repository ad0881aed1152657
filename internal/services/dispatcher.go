package services

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
)

// Sender is the multicast send capability. *messaging.Client satisfies it.
type Sender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// Dispatcher delivers one composed message to a list of device tokens in a
// single multicast call. No chunking is done even though FCM caps multicast
// size at 500 tokens. Known scale limitation.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Dispatch attaches tokens to the message and sends it once. An empty token
// list is a no-op, not an error. Each failed token is logged with its error.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *messaging.MulticastMessage, tokens []string) (*models.DispatchResult, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	msg.Tokens = tokens
	resp, err := d.sender.SendEachForMulticast(ctx, msg)
	if err != nil {
		log.Printf("Error sending multicast message: %v", err)
		return nil, fmt.Errorf("failed to send multicast message: %w", err)
	}

	result := &models.DispatchResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Responses:    make([]models.TokenResult, 0, len(resp.Responses)),
	}
	for i, r := range resp.Responses {
		tokenResult := models.TokenResult{Token: tokens[i], Success: r.Success}
		if !r.Success && r.Error != nil {
			tokenResult.Error = r.Error.Error()
			log.Printf("Failed to send to token %s: %v", tokens[i], r.Error)
		}
		result.Responses = append(result.Responses, tokenResult)
	}

	log.Printf("Successfully sent %d messages. Failed to send %d messages.", resp.SuccessCount, resp.FailureCount)
	return result, nil
}
