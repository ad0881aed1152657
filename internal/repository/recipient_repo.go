package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/Abdalrahman1723/car-service-center-app/internal/models"
	"google.golang.org/api/iterator"
)

// RecipientRepository reads delivery tokens from the "users" collection.
// Two directory shapes are in use: per-device documents under a user's
// "tokens" sub-collection, and a single scalar "fcmToken" field on the user
// document (the shape role queries read).
type RecipientRepository struct {
	client *firestore.Client
}

func NewRecipientRepository(client *firestore.Client) *RecipientRepository {
	return &RecipientRepository{client: client}
}

// TokensForUser returns the deduplicated device tokens registered under
// users/{userID}/tokens. An empty slice means the user has no usable tokens.
func (r *RecipientRepository) TokensForUser(ctx context.Context, userID string) ([]string, error) {
	iter := r.client.Collection("users").Doc(userID).Collection("tokens").Documents(ctx)

	var tokens []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var device models.DeviceToken
		if err := doc.DataTo(&device); err != nil {
			continue
		}
		if device.Token != "" {
			tokens = append(tokens, device.Token)
		}
	}

	return dedupTokens(tokens), nil
}

// TokensForRole returns the deduplicated fcmToken values of all users whose
// role field equals role. Users without a token are skipped.
func (r *RecipientRepository) TokensForRole(ctx context.Context, role string) ([]string, error) {
	iter := r.client.Collection("users").Where("role", "==", role).Documents(ctx)

	var tokens []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var user models.User
		if err := doc.DataTo(&user); err != nil {
			continue
		}
		if user.FCMToken != "" {
			tokens = append(tokens, user.FCMToken)
		}
	}

	return dedupTokens(tokens), nil
}

// dedupTokens drops duplicate tokens, keeping first occurrence order.
func dedupTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
