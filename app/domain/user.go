package domain

import "time"

// User is the canonical local identity record. It is created on first
// login from the Google profile and looked up by email on every login.
// Email is unique across users; the constraint lives in the database.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
