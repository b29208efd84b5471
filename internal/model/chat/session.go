package chat

import "time"

// Session captures one assistant conversation owned by a signed-in user.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
