package model

import "time"

// UserProfile identifies the authenticated user. A nil profile means the
// session is anonymous (guest mode).
type UserProfile struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}
