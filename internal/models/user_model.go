package models

import "time"

// User represents a user in the system.
// ID is the auth subject id and doubles as the Firestore document ID.
// The embedded plan is always replaced wholesale, never partially merged.
type User struct {
	ID          string    `json:"id" firestore:"-"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Plan        Plan      `json:"plan" firestore:"plan"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	LastLogin   time.Time `json:"lastLogin" firestore:"lastLogin"`
}
