package models

import "time"

// User represents a user document in the "users" collection.
type User struct {
	UserID    string    `firestore:"userId" json:"userId"`
	Username  string    `firestore:"username" json:"username"`
	Role      string    `firestore:"role" json:"role"`
	FCMToken  string    `firestore:"fcmToken" json:"fcmToken,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// DeviceToken represents one document in a user's "tokens" sub-collection.
// A user may register any number of devices.
type DeviceToken struct {
	Token     string    `firestore:"token" json:"token"`
	Platform  string    `firestore:"platform" json:"platform,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
